// Package gatekeeper arbitrates whether an invocation may start the
// daily session. Redundant OS triggers (scheduler, login hook, wake
// watcher) all funnel through AttemptLaunch; no matter how many fire
// in the same second, at most one session starts per day.
package gatekeeper

import (
	"errors"
	"log"
	"time"

	"github.com/example/vocabagent/internal/config"
)

// Result is the outcome of a launch arbitration
type Result int

const (
	// Skip means the launch is not needed: already done today, outside
	// the daily window, or a session is already running
	Skip Result = iota
	// Launched means this invocation started the session
	Launched
	// Denied means another invocation holds the lock, or the launch
	// itself failed
	Denied
)

func (r Result) String() string {
	switch r {
	case Skip:
		return "skip"
	case Launched:
		return "launched"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// LaunchFunc starts the session synchronously. It is invoked after the
// lock has been released; the run file already marks the session as
// in flight. A returned error means the session could not start.
type LaunchFunc func(now time.Time) error

// Gatekeeper decides whether a trigger invocation may start a session
type Gatekeeper struct {
	cfg    *config.Config
	lock   *Lock
	launch LaunchFunc
}

// New creates a gatekeeper for the configured data directory
func New(cfg *config.Config, launch LaunchFunc) *Gatekeeper {
	return &Gatekeeper{
		cfg:    cfg,
		lock:   NewLock(cfg.DataDir, cfg.LockStaleness),
		launch: launch,
	}
}

// AttemptLaunch runs the arbitration sequence, cheapest checks first:
// completion stamp, time window, running session, then the atomic lock.
// The lock covers only the launch decision itself; the run file written
// under the lock extends duplicate protection across the session.
func (g *Gatekeeper) AttemptLaunch(now time.Time) Result {
	if HasCompletedToday(g.cfg.DataDir, now) {
		return Skip
	}
	if !g.cfg.InWindow(now) {
		return Skip
	}
	if SessionRunning(g.cfg.DataDir) {
		return Skip
	}

	if err := g.lock.Acquire(now); err != nil {
		if !errors.Is(err, ErrLockHeld) {
			log.Printf("Lock acquisition failed: %v", err)
		}
		return Denied
	}
	// Losers of the arbitration race may have queued behind us; the
	// checks must hold under the lock too.
	if HasCompletedToday(g.cfg.DataDir, now) || SessionRunning(g.cfg.DataDir) {
		g.lock.Release()
		return Skip
	}

	PruneStamps(g.cfg.DataDir, now, g.cfg.StampRetention)

	if err := MarkRunning(g.cfg.DataDir); err != nil {
		log.Printf("Failed to mark session running: %v", err)
		g.lock.Release()
		return Denied
	}

	// The launch decision is made: release the lock before the
	// multi-minute session so later triggers are arbitrated promptly
	// (and skipped via the run file or the completion stamp).
	g.lock.Release()

	defer ClearRunning(g.cfg.DataDir)
	if err := g.launch(now); err != nil {
		log.Printf("Session launch failed: %v", err)
		return Denied
	}
	return Launched
}

// LockState exposes the lock's presence and age for diagnostics
func (g *Gatekeeper) LockState(now time.Time) (LockState, time.Duration) {
	return g.lock.State(now)
}
