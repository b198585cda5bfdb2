package activity

import (
	"testing"
	"time"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
)

// fixed "now" well away from midnight so AddDate day arithmetic is stable.
var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

func dayMS(offset int) int64 {
	return now.AddDate(0, 0, offset).UnixMilli()
}

func TestCompute_ActiveDates(t *testing.T) {
	problems := []problem.Record{
		{ID: "a", Timestamp: dayMS(-5), LastReviewed: dayMS(-2), LastUpdated: dayMS(0)},
		{ID: "b"}, // no activity at all
	}
	results := []problem.TestResult{
		{ID: "t1", Timestamp: dayMS(-1)},
	}

	stats := Compute(problems, results, now)

	for _, offset := range []int{-5, -2, -1, 0} {
		if !stats.ActiveDates[Key(now.AddDate(0, 0, offset))] {
			t.Errorf("expected day %d to be active", offset)
		}
	}
	if len(stats.ActiveDates) != 4 {
		t.Errorf("ActiveDates size = %d, want 4", len(stats.ActiveDates))
	}
}

func TestStreak_TodayActiveRunsBack(t *testing.T) {
	// Activity on D-2, D-1, D: streak 3.
	problems := []problem.Record{
		{ID: "a", Timestamp: dayMS(-2), LastReviewed: dayMS(-1), LastUpdated: dayMS(0)},
	}

	stats := Compute(problems, nil, now)
	if stats.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", stats.CurrentStreak)
	}
}

func TestStreak_GapYesterdayStopsAtToday(t *testing.T) {
	// Activity on D-2 and D but not D-1: the walk from yesterday stops
	// immediately, leaving only today's count.
	problems := []problem.Record{
		{ID: "a", Timestamp: dayMS(-2), LastUpdated: dayMS(0)},
	}

	stats := Compute(problems, nil, now)
	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", stats.CurrentStreak)
	}
}

func TestStreak_YesterdayOnlyAsymmetry(t *testing.T) {
	// Activity on D-2 and D-1 but not today. The yesterday branch skips the
	// initial increment, so the walk alone counts the run: streak 2.
	problems := []problem.Record{
		{ID: "a", Timestamp: dayMS(-2), LastReviewed: dayMS(-1)},
	}

	stats := Compute(problems, nil, now)
	if stats.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", stats.CurrentStreak)
	}
}

func TestStreak_NoRecentActivity(t *testing.T) {
	problems := []problem.Record{
		{ID: "a", Timestamp: dayMS(-4)},
	}

	stats := Compute(problems, nil, now)
	if stats.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", stats.CurrentStreak)
	}
}

func TestStreak_TestResultsCount(t *testing.T) {
	results := []problem.TestResult{
		{ID: "t1", Timestamp: dayMS(0)},
	}

	stats := Compute(nil, results, now)
	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", stats.CurrentStreak)
	}
}

func TestHeatmap_Shape(t *testing.T) {
	problems := []problem.Record{
		{ID: "a", Timestamp: dayMS(0), LastReviewed: dayMS(-29)},
		{ID: "old", LastUpdated: dayMS(-30)}, // outside the window
	}

	stats := Compute(problems, nil, now)
	hm := stats.Heatmap

	if len(hm) != HeatmapDays {
		t.Fatalf("heatmap length = %d, want %d", len(hm), HeatmapDays)
	}

	// Chronological order.
	for i := 1; i < len(hm); i++ {
		if !hm[i].Date.After(hm[i-1].Date) {
			t.Fatalf("heatmap not chronological at index %d", i)
		}
	}

	// Only the last entry is today.
	for i, d := range hm {
		want := i == len(hm)-1
		if d.IsToday != want {
			t.Errorf("entry %d IsToday = %v, want %v", i, d.IsToday, want)
		}
	}

	if !hm[0].Active {
		t.Error("expected oldest window day (D-29) to be active")
	}
	if !hm[len(hm)-1].Active {
		t.Error("expected today to be active")
	}
	if hm[1].Active {
		t.Error("expected D-28 to be inactive")
	}
}

func TestKey_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 6, 15, 0, 1, 0, 0, time.Local)
	night := time.Date(2024, 6, 15, 23, 59, 0, 0, time.Local)
	if Key(morning) != Key(night) {
		t.Error("expected same DateKey for the same calendar day")
	}
}
