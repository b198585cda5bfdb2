// Package capture turns page metadata from an external source into new
// problem records.
package capture

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
)

// DefaultPlatformID marks captures made by hand rather than by an
// integration that knows the source site.
const DefaultPlatformID = "manual"

// PageDetails is the metadata a source can extract from a problem page.
type PageDetails struct {
	Title       string
	URL         string
	Description string
	PlatformID  string
}

// DetailSource provides page metadata for capture. Implementations range
// from manual CLI input to a scraping front end.
type DetailSource interface {
	PageDetails() (PageDetails, error)
}

// StaticSource is a DetailSource backed by already-known details.
type StaticSource PageDetails

func (s StaticSource) PageDetails() (PageDetails, error) {
	return PageDetails(s), nil
}

// Store is the subset of the problem store capture needs.
type Store interface {
	SaveProblem(rec *problem.Record) (string, error)
	ListProblems() ([]problem.Record, error)
}

// Capture creates or updates a problem record from the source's page
// details. Re-capturing a URL that already has a record refreshes its
// metadata and leaves notes, solution, and review state untouched.
// New records start unreviewed in box 1.
func Capture(store Store, src DetailSource, now time.Time) (*problem.Record, error) {
	details, err := src.PageDetails()
	if err != nil {
		return nil, fmt.Errorf("get page details: %w", err)
	}
	if details.PlatformID == "" {
		details.PlatformID = DefaultPlatformID
	}

	existing, err := store.ListProblems()
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}

	if details.URL != "" {
		for i := range existing {
			if existing[i].URL == details.URL {
				rec := existing[i]
				rec.Title = details.Title
				rec.Description = details.Description
				rec.PlatformID = details.PlatformID
				rec.LastUpdated = now.UnixMilli()
				if _, err := store.SaveProblem(&rec); err != nil {
					return nil, fmt.Errorf("update problem %q: %w", rec.ID, err)
				}
				return &rec, nil
			}
		}
	}

	rec := &problem.Record{
		ID:          uniqueID(DeriveID(details), existing),
		Title:       details.Title,
		URL:         details.URL,
		Description: details.Description,
		PlatformID:  details.PlatformID,
		Timestamp:   now.UnixMilli(),
		LastUpdated: now.UnixMilli(),
		BoxLevel:    problem.MinBox,
	}
	if _, err := store.SaveProblem(rec); err != nil {
		return nil, fmt.Errorf("save problem %q: %w", rec.ID, err)
	}
	return rec, nil
}

// DeriveID picks an identifier for a capture: the last URL path segment
// when the URL parses (query string and fragment ignored), otherwise a
// slug of the title.
func DeriveID(details PageDetails) string {
	if details.URL != "" {
		if u, err := url.Parse(details.URL); err == nil {
			segments := strings.Split(strings.Trim(u.Path, "/"), "/")
			for i := len(segments) - 1; i >= 0; i-- {
				if s := Slugify(segments[i]); s != "" {
					return s
				}
			}
		}
	}
	if s := Slugify(details.Title); s != "" {
		return s
	}
	return "problem"
}

// Slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// uniqueID appends a numeric suffix until the ID does not collide with an
// existing record.
func uniqueID(id string, existing []problem.Record) string {
	taken := make(map[string]bool, len(existing))
	for i := range existing {
		taken[existing[i].ID] = true
	}
	if !taken[id] {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
