// Package activity derives practice-activity information from problem and
// test-result timestamps: the set of active calendar days, the current
// consecutive-day streak, and a 30-day heatmap.
package activity

import (
	"time"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
)

// HeatmapDays is the fixed length of the activity heatmap.
const HeatmapDays = 30

// DateKey identifies a calendar day in local time, independent of
// time-of-day.
type DateKey struct {
	Year  int
	Month time.Month
	Day   int
}

// Key returns the DateKey for an instant, in local time.
func Key(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey{Year: y, Month: m, Day: d}
}

// Day is one heatmap cell.
type Day struct {
	Date    time.Time
	Active  bool
	IsToday bool
}

// Stats is the computed activity view.
type Stats struct {
	CurrentStreak int
	ActiveDates   map[DateKey]bool
	Heatmap       []Day
}

// Compute builds activity stats from the full problem set and test history
// at the supplied instant. Pure function of its inputs.
func Compute(problems []problem.Record, results []problem.TestResult, now time.Time) Stats {
	active := activeDates(problems, results)

	return Stats{
		CurrentStreak: streak(active, now),
		ActiveDates:   active,
		Heatmap:       heatmap(active, now),
	}
}

// activeDates collects the calendar days with any recorded activity: problem
// creation, review, or save, and finished tests.
func activeDates(problems []problem.Record, results []problem.TestResult) map[DateKey]bool {
	active := make(map[DateKey]bool)

	mark := func(ms int64) {
		if ms != 0 {
			active[Key(time.UnixMilli(ms))] = true
		}
	}

	for _, p := range problems {
		mark(p.Timestamp)
		mark(p.LastReviewed)
		mark(p.LastUpdated)
	}
	for _, r := range results {
		mark(r.Timestamp)
	}
	return active
}

// streak counts consecutive active days ending at the present. An active
// today starts the count at one before walking backward from yesterday; an
// active yesterday with an idle today starts at zero and re-examines
// yesterday in the walk, matching the behavior users already rely on.
func streak(active map[DateKey]bool, now time.Time) int {
	today := Key(now)
	yesterday := Key(now.AddDate(0, 0, -1))

	count := 0
	cursor := now.AddDate(0, 0, -1)

	switch {
	case active[today]:
		count = 1
	case active[yesterday]:
		// Walk starts at yesterday itself.
	default:
		return 0
	}

	for active[Key(cursor)] {
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}

// heatmap emits the last HeatmapDays calendar days in chronological order,
// ending with today.
func heatmap(active map[DateKey]bool, now time.Time) []Day {
	days := make([]Day, 0, HeatmapDays)
	for i := HeatmapDays - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		days = append(days, Day{
			Date:    d,
			Active:  active[Key(d)],
			IsToday: i == 0,
		})
	}
	return days
}
