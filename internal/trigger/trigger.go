// Package trigger provides a built-in calendar trigger source. It is
// just one more client of the gatekeeper's invocation surface, on equal
// footing with login hooks and wake watchers: all the arbitration still
// happens in the gatekeeper.
package trigger

import (
	"log"
	"time"

	"github.com/example/vocabagent/internal/gatekeeper"
	"github.com/go-co-op/gocron"
)

// Daemon periodically invokes the gatekeeper
type Daemon struct {
	scheduler *gocron.Scheduler
	gate      *gatekeeper.Gatekeeper
	interval  time.Duration
}

// New creates a daemon firing at the given interval
func New(gate *gatekeeper.Gatekeeper, interval time.Duration) *Daemon {
	return &Daemon{
		scheduler: gocron.NewScheduler(time.Local),
		gate:      gate,
		interval:  interval,
	}
}

// Start begins firing in the background, including one immediate
// invocation so a freshly started daemon inside the window still
// launches today's session
func (d *Daemon) Start() error {
	_, err := d.scheduler.Every(d.interval).StartImmediately().Do(d.fire)
	if err != nil {
		return err
	}
	d.scheduler.StartAsync()
	return nil
}

// Stop terminates the schedule
func (d *Daemon) Stop() {
	d.scheduler.Stop()
}

func (d *Daemon) fire() {
	result := d.gate.AttemptLaunch(time.Now())
	// Skip and denied are the expected steady state; only a launch
	// is worth a line in the log
	if result == gatekeeper.Launched {
		log.Printf("Trigger launched today's session")
	}
}
