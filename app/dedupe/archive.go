package dedupe

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/acadjobs/job-comb/app/listing"
)

// Archive holds the previous run's listings, indexed for new/active
// detection. It is read-only input; the pipeline never mutates it.
type Archive struct {
	listings []listing.Listing
	byID     map[string]int
	byKey    map[string]int
}

// LoadArchive reads the most recent "*_jobs.json" file (newest by filename
// sort) from dir. A missing directory or an empty one yields an empty
// archive: the first run has nothing to compare against. An unreadable
// directory or a corrupt archive file is an environment failure and aborts
// the run.
func LoadArchive(dir string) (*Archive, error) {
	archive := &Archive{
		byID:  make(map[string]int),
		byKey: make(map[string]int),
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Debug("Archive directory not found, treating as first run", "dir", dir)
		return archive, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), "_jobs.json") {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		return archive, nil
	}
	sort.Strings(files)
	newest := filepath.Join(dir, files[len(files)-1])

	data, err := os.ReadFile(newest)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive file %s: %w", newest, err)
	}

	listings, err := decodeListings(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse archive file %s: %w", newest, err)
	}

	archive.listings = listings
	for i := range listings {
		archive.byID[listings[i].ID] = i
		archive.byKey[archiveKey(&listings[i])] = i
	}

	slog.Info("Loaded archive", "file", newest, "listings", len(listings))
	return archive, nil
}

// decodeListings accepts both archive shapes: a bare array of listings or
// the {"listings": [...]} envelope.
func decodeListings(data []byte) ([]listing.Listing, error) {
	var envelope struct {
		Listings []listing.Listing `json:"listings"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Listings != nil {
		return envelope.Listings, nil
	}

	var bare []listing.Listing
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

// Len returns the number of archived listings.
func (a *Archive) Len() int {
	return len(a.listings)
}

func archiveKey(l *listing.Listing) string {
	return NormalizeInstitution(l.Institution) + "||" + strings.ToLower(l.Title) + "||" + l.Deadline
}

// MarkNewActive sets is_new and is_active on every current listing by
// comparison against the archive. Matching tries exact ID, then the exact
// institution+title+deadline key, then a fuzzy match requiring an identical
// deadline and a combined institution/title similarity of at least the
// dedup threshold.
func (d *Deduplicator) MarkNewActive(current []listing.Listing, archive *Archive, today time.Time) {
	day := today.Truncate(24 * time.Hour)

	for i := range current {
		l := &current[i]
		prev := d.findPrevious(l, archive)
		l.IsNew = prev == nil

		if deadline, err := time.Parse("2006-01-02", l.Deadline); err == nil {
			l.IsActive = !deadline.Before(day)
		} else if prev != nil {
			l.IsActive = prev.IsActive
		} else {
			l.IsActive = true
		}
	}
}

func (d *Deduplicator) findPrevious(l *listing.Listing, archive *Archive) *listing.Listing {
	if i, ok := archive.byID[l.ID]; ok {
		return &archive.listings[i]
	}
	if i, ok := archive.byKey[archiveKey(l)]; ok {
		return &archive.listings[i]
	}

	// Fuzzy fallback: same deadline, weighted institution+title similarity.
	var best *listing.Listing
	bestScore := 0.0
	for i := range archive.listings {
		prev := &archive.listings[i]
		if prev.Deadline != l.Deadline {
			continue
		}
		score := 0.4*d.similarity(l.Institution, prev.Institution) +
			0.6*d.similarity(l.Title, prev.Title)
		if score >= d.threshold && score > bestScore {
			best = prev
			bestScore = score
		}
	}
	return best
}
