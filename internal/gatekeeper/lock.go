package gatekeeper

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ErrLockHeld is returned when another invocation actively holds the lock
var ErrLockHeld = errors.New("launch lock is held")

// LockState describes whether the launch lock exists
type LockState int

const (
	// LockAbsent means no invocation is arbitrating
	LockAbsent LockState = iota
	// LockHeld means the lock directory exists
	LockHeld
)

// lockRecord identifies the holder, written inside the lock directory
// so crashed holders can be diagnosed and aged
type lockRecord struct {
	HolderNonce string    `json:"holder_nonce"`
	PID         int       `json:"pid"`
	AcquiredAt  time.Time `json:"acquired_at"`
}

// Lock is the mutual-exclusion marker guarding the launch decision.
// Acquisition is an atomic directory create, never a check-then-act pair.
type Lock struct {
	path      string
	staleness time.Duration
}

// NewLock creates a lock rooted in the data directory
func NewLock(dataDir string, staleness time.Duration) *Lock {
	return &Lock{
		path:      filepath.Join(dataDir, "session.lock"),
		staleness: staleness,
	}
}

// Acquire takes the lock atomically. If the lock is already held but
// older than the staleness threshold it is assumed abandoned by a
// crashed holder, force-cleared, and acquisition is retried once.
func (l *Lock) Acquire(now time.Time) error {
	if err := l.tryAcquire(now); err == nil {
		return nil
	} else if !errors.Is(err, ErrLockHeld) {
		return err
	}

	state, age := l.State(now)
	if state == LockHeld && age > l.staleness {
		log.Printf("Clearing stale launch lock (age %s)", age.Round(time.Second))
		if err := os.RemoveAll(l.path); err != nil {
			return fmt.Errorf("failed to clear stale lock: %v", err)
		}
		return l.tryAcquire(now)
	}

	return ErrLockHeld
}

func (l *Lock) tryAcquire(now time.Time) error {
	err := os.Mkdir(l.path, 0755)
	if os.IsExist(err) {
		return ErrLockHeld
	}
	if err != nil {
		return fmt.Errorf("failed to create lock: %v", err)
	}

	record := lockRecord{
		HolderNonce: uuid.NewString(),
		PID:         os.Getpid(),
		AcquiredAt:  now,
	}
	data, err := json.Marshal(record)
	if err == nil {
		err = os.WriteFile(l.recordPath(), data, 0644)
	}
	if err != nil {
		// The lock itself exists; the record is only diagnostics
		log.Printf("Failed to write lock record: %v", err)
	}
	return nil
}

// Release removes the lock unconditionally. Safe to call on every exit
// path, including when the lock was never acquired.
func (l *Lock) Release() {
	if err := os.RemoveAll(l.path); err != nil {
		log.Printf("Failed to release lock: %v", err)
	}
}

// State reports whether the lock exists, and its age if it does.
// Age comes from the holder record when readable, otherwise from the
// directory modification time.
func (l *Lock) State(now time.Time) (LockState, time.Duration) {
	info, err := os.Stat(l.path)
	if err != nil {
		return LockAbsent, 0
	}

	acquiredAt := info.ModTime()
	if data, err := os.ReadFile(l.recordPath()); err == nil {
		var record lockRecord
		if json.Unmarshal(data, &record) == nil && !record.AcquiredAt.IsZero() {
			acquiredAt = record.AcquiredAt
		}
	}

	return LockHeld, now.Sub(acquiredAt)
}

func (l *Lock) recordPath() string {
	return filepath.Join(l.path, "holder.json")
}
