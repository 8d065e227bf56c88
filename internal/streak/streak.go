// Package streak derives consecutive-day completion streaks from
// the ordered set of completed attempt dates.
package streak

import (
	"sort"
	"time"

	"github.com/example/vocabagent/pkg/models"
)

// DateLayout is the calendar-day key format used throughout the store
const DateLayout = "2006-01-02"

// AsOf computes the current and longest streak from the given completed
// dates, judged as of the given day. The current streak counts only while
// the most recent completed day is the as-of day or the day before it;
// a longer gap zeroes current but never longest. All arithmetic is in
// calendar days, so daylight-saving shifts cannot distort run lengths.
func AsOf(dates []time.Time, asOf time.Time) models.Streak {
	days := distinctDaysDescending(dates)
	if len(days) == 0 {
		return models.Streak{}
	}

	var streak models.Streak

	run := 1
	for i := 1; i <= len(days); i++ {
		if i < len(days) && sameDay(days[i], prevDay(days[i-1])) {
			run++
			continue
		}
		if run > streak.Longest {
			streak.Longest = run
		}
		if i == run {
			// The run that includes the most recent completed day
			// counts as current only if it is still reachable from asOf.
			if sameDay(days[0], asOf) || sameDay(days[0], prevDay(asOf)) {
				streak.Current = run
			}
		}
		run = 1
	}

	return streak
}

// AsOfStrings is AsOf over ISO date strings as stored in the ledger;
// unparseable entries are skipped
func AsOfStrings(dates []string, asOf time.Time) models.Streak {
	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if t, err := time.ParseInLocation(DateLayout, d, asOf.Location()); err == nil {
			parsed = append(parsed, t)
		}
	}
	return AsOf(parsed, asOf)
}

func distinctDaysDescending(dates []time.Time) []time.Time {
	seen := make(map[string]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		key := d.Format(DateLayout)
		if !seen[key] {
			seen[key] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Format(DateLayout) > days[j].Format(DateLayout)
	})
	return days
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func prevDay(t time.Time) time.Time {
	return t.AddDate(0, 0, -1)
}
