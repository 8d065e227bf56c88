package gatekeeper

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Completion stamps are day-keyed marker files whose existence means
// "today's attempt is complete". They exist only to stop duplicate
// same-day launches; long-term history lives in the database.
const (
	stampPrefix = ".done-"
	dateLayout  = "2006-01-02"
)

// StampPath returns the stamp file path for the given day
func StampPath(dataDir string, day time.Time) string {
	return filepath.Join(dataDir, stampPrefix+day.Format(dateLayout))
}

// HasCompletedToday reports whether a completion stamp exists for the
// given time's calendar day
func HasCompletedToday(dataDir string, now time.Time) bool {
	_, err := os.Stat(StampPath(dataDir, now))
	return err == nil
}

// WriteStamp creates the completion stamp for the given day, exactly
// once. An already-existing stamp is not an error: the day is complete
// either way, and the stamp is never mutated.
func WriteStamp(dataDir string, day time.Time) error {
	f, err := os.OpenFile(StampPath(dataDir, day), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if os.IsExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// PruneStamps deletes stamps older than the retention window and returns
// how many were removed. Pure housekeeping: correctness never depends on
// old stamps being gone.
func PruneStamps(dataDir string, now time.Time, retention time.Duration) int {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return 0
	}

	cutoff := now.Add(-retention)
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, stampPrefix) {
			continue
		}
		day, err := time.ParseInLocation(dateLayout, strings.TrimPrefix(name, stampPrefix), now.Location())
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			if err := os.Remove(filepath.Join(dataDir, name)); err != nil {
				log.Printf("Failed to prune stamp %s: %v", name, err)
				continue
			}
			removed++
		}
	}
	return removed
}
