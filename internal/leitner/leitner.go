// Package leitner implements the 5-box spaced-repetition schedule used for
// problem reviews. Boxes climb on easy outcomes, hold on medium, and reset
// to 1 on hard; each box maps to a fixed review interval.
package leitner

import (
	"time"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
)

// boxIntervals is the review interval in days, indexed by box level.
var boxIntervals = map[int]int{
	1: 1,
	2: 3,
	3: 7,
	4: 14,
	5: 30,
}

const msPerDay = 24 * 60 * 60 * 1000

// IntervalDays returns the review interval for a box level. Out-of-range
// levels are clamped first.
func IntervalDays(box int) int {
	if box < problem.MinBox {
		box = problem.MinBox
	}
	if box > problem.MaxBox {
		box = problem.MaxBox
	}
	return boxIntervals[box]
}

// NextBox returns the box a review outcome moves a problem into.
func NextBox(current int, outcome problem.Outcome) int {
	switch outcome {
	case problem.OutcomeEasy:
		if current >= problem.MaxBox {
			return problem.MaxBox
		}
		return current + 1
	case problem.OutcomeHard:
		return problem.MinBox
	default:
		return current
	}
}

// Review applies a review outcome to a record at the given instant. The
// returned record has updated box, review timestamps, and difficulty; every
// other field is carried over unchanged. Total over any input: a record
// that has never been reviewed is treated as box 1.
func Review(rec problem.Record, outcome problem.Outcome, now time.Time) problem.Record {
	next := NextBox(rec.Box(), outcome)

	rec.BoxLevel = next
	rec.LastReviewed = now.UnixMilli()
	rec.NextReviewDate = now.UnixMilli() + int64(IntervalDays(next))*msPerDay
	rec.Difficulty = outcome
	return rec
}
