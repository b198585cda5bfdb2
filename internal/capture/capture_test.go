package capture

import (
	"testing"
	"time"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
)

type memStore struct {
	problems map[string]problem.Record
}

func newMemStore() *memStore {
	return &memStore{problems: make(map[string]problem.Record)}
}

func (m *memStore) SaveProblem(rec *problem.Record) (string, error) {
	m.problems[rec.ID] = *rec
	return rec.ID + ".json", nil
}

func (m *memStore) ListProblems() ([]problem.Record, error) {
	var out []problem.Record
	for _, p := range m.problems {
		out = append(out, p)
	}
	return out, nil
}

func TestDeriveID(t *testing.T) {
	tests := []struct {
		name    string
		details PageDetails
		want    string
	}{
		{
			name:    "url path segment",
			details: PageDetails{URL: "https://leetcode.com/problems/two-sum/"},
			want:    "two-sum",
		},
		{
			name:    "query string ignored",
			details: PageDetails{URL: "https://leetcode.com/problems/merge-intervals/?tab=description"},
			want:    "merge-intervals",
		},
		{
			name:    "title fallback",
			details: PageDetails{Title: "Binary Tree Level Order Traversal"},
			want:    "binary-tree-level-order-traversal",
		},
		{
			name:    "empty details",
			details: PageDetails{},
			want:    "problem",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveID(tt.details); got != tt.want {
				t.Errorf("DeriveID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Two Sum", "two-sum"},
		{"  LRU   Cache!! ", "lru-cache"},
		{"3Sum", "3sum"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCaptureNewRecord(t *testing.T) {
	store := newMemStore()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	src := StaticSource{
		Title:       "Two Sum",
		URL:         "https://leetcode.com/problems/two-sum/",
		Description: "Find two numbers that add up to target.",
	}
	rec, err := Capture(store, src, now)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	if rec.ID != "two-sum" {
		t.Fatalf("ID = %q, want two-sum", rec.ID)
	}
	if rec.BoxLevel != problem.MinBox {
		t.Fatalf("BoxLevel = %d, want %d", rec.BoxLevel, problem.MinBox)
	}
	if rec.Timestamp != now.UnixMilli() {
		t.Fatalf("Timestamp = %d, want %d", rec.Timestamp, now.UnixMilli())
	}
	if rec.Notes != "" || rec.Solution != "" {
		t.Fatal("new record should have empty notes and solution")
	}
	if rec.PlatformID != DefaultPlatformID {
		t.Fatalf("PlatformID = %q, want %q", rec.PlatformID, DefaultPlatformID)
	}
	if _, ok := store.problems["two-sum"]; !ok {
		t.Fatal("record not saved")
	}
}

func TestCaptureSameURLUpdatesMetadataOnly(t *testing.T) {
	store := newMemStore()
	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	store.problems["two-sum"] = problem.Record{
		ID:        "two-sum",
		Title:     "Two Sum",
		URL:       "https://leetcode.com/problems/two-sum/",
		Notes:     "use a hash map",
		Solution:  "func twoSum(...)",
		Timestamp: created.UnixMilli(),
		BoxLevel:  3,
	}

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	src := StaticSource{
		Title:       "Two Sum (updated)",
		URL:         "https://leetcode.com/problems/two-sum/",
		Description: "refreshed description",
	}
	rec, err := Capture(store, src, now)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	if rec.ID != "two-sum" {
		t.Fatalf("ID = %q, want two-sum", rec.ID)
	}
	if rec.Title != "Two Sum (updated)" {
		t.Fatalf("Title = %q, metadata should refresh", rec.Title)
	}
	if rec.Notes != "use a hash map" || rec.Solution != "func twoSum(...)" {
		t.Fatal("notes and solution must survive re-capture")
	}
	if rec.BoxLevel != 3 {
		t.Fatalf("BoxLevel = %d, review state must survive re-capture", rec.BoxLevel)
	}
	if rec.Timestamp != created.UnixMilli() {
		t.Fatal("creation timestamp must not change on re-capture")
	}
	if len(store.problems) != 1 {
		t.Fatalf("len(problems) = %d, want 1", len(store.problems))
	}
}

func TestCaptureCollidingIDGetsSuffix(t *testing.T) {
	store := newMemStore()
	store.problems["two-sum"] = problem.Record{
		ID:  "two-sum",
		URL: "https://example.com/other/two-sum",
	}

	src := StaticSource{
		Title: "Two Sum",
		URL:   "https://leetcode.com/problems/two-sum/",
	}
	rec, err := Capture(store, src, time.Now())
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if rec.ID != "two-sum-2" {
		t.Fatalf("ID = %q, want two-sum-2", rec.ID)
	}
}

func TestCaptureKeepsExplicitPlatformID(t *testing.T) {
	store := newMemStore()
	src := StaticSource{
		Title:      "Two Sum",
		URL:        "https://leetcode.com/problems/two-sum/",
		PlatformID: "leetcode",
	}
	rec, err := Capture(store, src, time.Now())
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if rec.PlatformID != "leetcode" {
		t.Fatalf("PlatformID = %q, want leetcode", rec.PlatformID)
	}
}
