package leitner

import (
	"testing"
	"time"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
)

func TestNextBox(t *testing.T) {
	tests := []struct {
		current int
		outcome problem.Outcome
		want    int
	}{
		{1, problem.OutcomeEasy, 2},
		{2, problem.OutcomeEasy, 3},
		{4, problem.OutcomeEasy, 5},
		{5, problem.OutcomeEasy, 5}, // capped
		{1, problem.OutcomeMedium, 1},
		{3, problem.OutcomeMedium, 3},
		{5, problem.OutcomeMedium, 5},
		{1, problem.OutcomeHard, 1},
		{3, problem.OutcomeHard, 1},
		{5, problem.OutcomeHard, 1},
	}

	for _, tt := range tests {
		if got := NextBox(tt.current, tt.outcome); got != tt.want {
			t.Errorf("NextBox(%d, %s) = %d, want %d", tt.current, tt.outcome, got, tt.want)
		}
	}
}

func TestNextBox_Properties(t *testing.T) {
	for box := problem.MinBox; box <= problem.MaxBox; box++ {
		if got := NextBox(box, problem.OutcomeEasy); got < box || got > problem.MaxBox {
			t.Errorf("easy from box %d moved to %d", box, got)
		}
		if got := NextBox(box, problem.OutcomeMedium); got != box {
			t.Errorf("medium from box %d moved to %d, want identity", box, got)
		}
		if got := NextBox(box, problem.OutcomeHard); got != problem.MinBox {
			t.Errorf("hard from box %d moved to %d, want 1", box, got)
		}
	}
}

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		box  int
		want int
	}{
		{1, 1},
		{2, 3},
		{3, 7},
		{4, 14},
		{5, 30},
		{0, 1},  // clamped low
		{7, 30}, // clamped high
	}

	for _, tt := range tests {
		if got := IntervalDays(tt.box); got != tt.want {
			t.Errorf("IntervalDays(%d) = %d, want %d", tt.box, got, tt.want)
		}
	}
}

func TestReview_IntervalMatchesResultingBox(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC)

	for box := problem.MinBox; box <= problem.MaxBox; box++ {
		for _, outcome := range []problem.Outcome{problem.OutcomeEasy, problem.OutcomeMedium, problem.OutcomeHard} {
			rec := Review(problem.Record{ID: "p", BoxLevel: box}, outcome, now)

			wantGap := int64(IntervalDays(rec.BoxLevel)) * msPerDay
			if gap := rec.NextReviewDate - rec.LastReviewed; gap != wantGap {
				t.Errorf("box %d %s: nextReviewDate-lastReviewed = %d, want %d", box, outcome, gap, wantGap)
			}
			if rec.LastReviewed != now.UnixMilli() {
				t.Errorf("box %d %s: lastReviewed = %d, want %d", box, outcome, rec.LastReviewed, now.UnixMilli())
			}
			if rec.Difficulty != outcome {
				t.Errorf("box %d %s: difficulty = %s", box, outcome, rec.Difficulty)
			}
		}
	}
}

func TestReview_FirstEasyThenHard(t *testing.T) {
	t0 := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	// Never reviewed, first review easy: box 2, due in 3 days.
	rec := Review(problem.Record{ID: "two-sum"}, problem.OutcomeEasy, t0)
	if rec.BoxLevel != 2 {
		t.Fatalf("box after easy = %d, want 2", rec.BoxLevel)
	}
	if want := t0.UnixMilli() + 3*msPerDay; rec.NextReviewDate != want {
		t.Errorf("nextReviewDate = %d, want t0 + 3 days (%d)", rec.NextReviewDate, want)
	}

	// Hard at t0+3d: reset to box 1, due in 1 day.
	t1 := t0.AddDate(0, 0, 3)
	rec = Review(rec, problem.OutcomeHard, t1)
	if rec.BoxLevel != 1 {
		t.Fatalf("box after hard = %d, want 1", rec.BoxLevel)
	}
	if want := t1.UnixMilli() + 1*msPerDay; rec.NextReviewDate != want {
		t.Errorf("nextReviewDate = %d, want t1 + 1 day (%d)", rec.NextReviewDate, want)
	}
}

func TestReview_PreservesOtherFields(t *testing.T) {
	now := time.Now()
	in := problem.Record{
		ID:         "lru-cache",
		Notes:      "use doubly linked list",
		Solution:   "type LRU struct{...}",
		Title:      "LRU Cache",
		URL:        "https://leetcode.com/problems/lru-cache",
		PlatformID: "leetcode",
		Timestamp:  1700000000000,
	}

	out := Review(in, problem.OutcomeMedium, now)

	if out.ID != in.ID || out.Notes != in.Notes || out.Solution != in.Solution ||
		out.Title != in.Title || out.URL != in.URL || out.PlatformID != in.PlatformID ||
		out.Timestamp != in.Timestamp {
		t.Errorf("Review mutated unrelated fields: %+v", out)
	}
}
