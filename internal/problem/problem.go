package problem

import (
	"fmt"
	"strings"
	"time"
)

// MinBox and MaxBox bound the Leitner box levels.
const (
	MinBox = 1
	MaxBox = 5
)

// MasteredThreshold is the box level above which a problem counts as mastered.
const MasteredThreshold = 3

// Outcome is the self-reported difficulty of a review.
type Outcome string

const (
	OutcomeEasy   Outcome = "easy"
	OutcomeMedium Outcome = "medium"
	OutcomeHard   Outcome = "hard"
)

// ParseOutcome converts user input into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(strings.ToLower(strings.TrimSpace(s))) {
	case OutcomeEasy:
		return OutcomeEasy, nil
	case OutcomeMedium:
		return OutcomeMedium, nil
	case OutcomeHard:
		return OutcomeHard, nil
	}
	return "", fmt.Errorf("unknown outcome %q (want easy, medium, or hard)", s)
}

// Record is a single tracked problem. Field names and the millisecond-epoch
// timestamps match the on-disk JSON format, so existing data directories
// load unchanged.
type Record struct {
	ID          string `json:"id"`
	Notes       string `json:"notes"`
	Solution    string `json:"solution"`
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	PlatformID  string `json:"platformId,omitempty"`

	// Timestamp is the creation time in ms epoch, set once.
	Timestamp int64 `json:"timestamp,omitempty"`

	// LastUpdated is set on every save.
	LastUpdated int64 `json:"lastUpdated,omitempty"`

	// BoxLevel is the Leitner box in [1,5]; zero means never reviewed.
	BoxLevel int `json:"box,omitempty"`

	// LastReviewed and NextReviewDate are ms epochs; zero means absent.
	LastReviewed   int64 `json:"lastReviewed,omitempty"`
	NextReviewDate int64 `json:"nextReviewDate,omitempty"`

	// Difficulty is the outcome of the most recent review.
	Difficulty Outcome `json:"difficulty,omitempty"`
}

// Box returns the effective box level: an absent or out-of-range value is
// treated as box 1.
func (r Record) Box() int {
	if r.BoxLevel < MinBox {
		return MinBox
	}
	if r.BoxLevel > MaxBox {
		return MaxBox
	}
	return r.BoxLevel
}

// IsDue reports whether the problem is due for review: no scheduled date,
// or a scheduled date at or before now.
func (r Record) IsDue(now time.Time) bool {
	return r.NextReviewDate == 0 || r.NextReviewDate <= now.UnixMilli()
}

// Mastered reports whether the problem has climbed past the mastery
// threshold box.
func (r Record) Mastered() bool {
	return r.BoxLevel > MasteredThreshold
}

// ReviewedOn reports whether the problem's last review fell on the calendar
// day containing t (local time).
func (r Record) ReviewedOn(t time.Time) bool {
	if r.LastReviewed == 0 {
		return false
	}
	reviewed := time.UnixMilli(r.LastReviewed)
	ry, rm, rd := reviewed.Date()
	ty, tm, td := t.Date()
	return ry == ty && rm == tm && rd == td
}

// DisplayTitle returns the title, or a placeholder derived from the ID.
func (r Record) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return "Problem " + r.ID
}

// SanitizeID maps a problem identifier to the restricted character set used
// for storage keys: every byte outside [a-zA-Z0-9] becomes an underscore.
func SanitizeID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// TestResult is the immutable outcome of one finished mock-test session.
type TestResult struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`

	// DurationSeconds is the time actually used, not the configured limit.
	DurationSeconds int `json:"durationSeconds"`
}

// Percent returns the score as a rounded percentage, 0 for an empty test.
func (t TestResult) Percent() int {
	if t.Total == 0 {
		return 0
	}
	return int(float64(t.Score)/float64(t.Total)*100 + 0.5)
}
