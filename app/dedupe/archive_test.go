package dedupe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/listing"
)

func writeArchiveFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write archive file: %v", err)
	}
}

func TestLoadArchive_MissingDirIsFirstRun(t *testing.T) {
	archive, err := LoadArchive(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Expected no error for a missing directory, got %v", err)
	}
	if archive.Len() != 0 {
		t.Errorf("Expected empty archive, got %d listings", archive.Len())
	}
}

func TestLoadArchive_BothShapes(t *testing.T) {
	bare := `[{"id":"x1","title":"Lecturer","institution":"MIT","source":"aea"}]`
	envelope := `{"listings":[{"id":"x2","title":"Lecturer","institution":"MIT","source":"aea"}]}`

	for name, content := range map[string]string{"bare": bare, "envelope": envelope} {
		dir := t.TempDir()
		writeArchiveFile(t, dir, "2025-06-01_jobs.json", content)
		archive, err := LoadArchive(dir)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if archive.Len() != 1 {
			t.Errorf("%s: expected 1 listing, got %d", name, archive.Len())
		}
	}
}

func TestLoadArchive_NewestFileWins(t *testing.T) {
	dir := t.TempDir()
	writeArchiveFile(t, dir, "2025-06-01_jobs.json", `[{"id":"old"}]`)
	writeArchiveFile(t, dir, "2025-06-15_jobs.json", `[{"id":"new"},{"id":"newer"}]`)
	writeArchiveFile(t, dir, "notes.txt", "ignored")

	archive, err := LoadArchive(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if archive.Len() != 2 {
		t.Errorf("Expected the newest file's 2 listings, got %d", archive.Len())
	}
	if _, ok := archive.byID["new"]; !ok {
		t.Error("Expected listing from the newest archive file")
	}
}

func TestLoadArchive_CorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	writeArchiveFile(t, dir, "2025-06-01_jobs.json", `{broken`)
	if _, err := LoadArchive(dir); err == nil {
		t.Error("Expected an error for a corrupt archive file")
	}
}

func TestMarkNewActive(t *testing.T) {
	d := New(diagnostics.NewCollector())
	today := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	dir := t.TempDir()
	writeArchiveFile(t, dir, "2025-06-01_jobs.json", `{"listings":[
		{"id":"known","title":"Assistant Professor","institution":"Harvard University","deadline":"2025-01-15","source":"aea","is_active":false}
	]}`)
	archive, err := LoadArchive(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	current := []listing.Listing{
		// Seen before by ID; deadline in the past.
		{ID: "known", Title: "Assistant Professor", Institution: "Harvard University", Deadline: "2025-01-15"},
		// Never seen; deadline in the future.
		{ID: "fresh", Title: "Lecturer", Institution: "MIT", Deadline: "2025-09-01"},
		// Never seen; unparseable deadline defaults to active.
		{ID: "odd", Title: "Postdoc", Institution: "Yale", Deadline: "rolling"},
		// Never seen; deadline already past.
		{ID: "late", Title: "Lecturer II", Institution: "Stanford", Deadline: "2024-01-01"},
	}

	d.MarkNewActive(current, archive, today)

	if current[0].IsNew {
		t.Error("Expected archived listing not to be new")
	}
	if current[0].IsActive {
		t.Error("Expected past-deadline listing to be inactive")
	}
	if !current[1].IsNew || !current[1].IsActive {
		t.Errorf("Expected fresh future-deadline listing new and active, got new=%v active=%v", current[1].IsNew, current[1].IsActive)
	}
	if !current[2].IsNew || !current[2].IsActive {
		t.Errorf("Expected unknown-deadline listing new and active, got new=%v active=%v", current[2].IsNew, current[2].IsActive)
	}
	if !current[3].IsNew || current[3].IsActive {
		t.Errorf("Expected unseen past-deadline listing new and inactive, got new=%v active=%v", current[3].IsNew, current[3].IsActive)
	}
}

func TestMarkNewActive_DeadlineTodayIsActive(t *testing.T) {
	d := New(diagnostics.NewCollector())
	archive, _ := LoadArchive(filepath.Join(t.TempDir(), "none"))
	today := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)

	current := []listing.Listing{
		{ID: "edge", Title: "Lecturer", Institution: "MIT", Deadline: "2025-06-15"},
	}
	d.MarkNewActive(current, archive, today)
	if !current[0].IsActive {
		t.Error("Expected a listing whose deadline is today to be active")
	}
}

func TestFindPrevious_FuzzyMatch(t *testing.T) {
	d := New(diagnostics.NewCollector())

	dir := t.TempDir()
	writeArchiveFile(t, dir, "2025-06-01_jobs.json", `{"listings":[
		{"id":"a1","title":"Assistant Professor of Economics","institution":"Harvard University","deadline":"2025-01-15","source":"aea"}
	]}`)
	archive, err := LoadArchive(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Different ID and slightly different title, same deadline.
	l := listing.Listing{
		ID:          "b2",
		Title:       "Assistant Prof. of Economics",
		Institution: "Harvard University",
		Deadline:    "2025-01-15",
	}
	if prev := d.findPrevious(&l, archive); prev == nil || prev.ID != "a1" {
		t.Errorf("Expected fuzzy archive match to a1, got %v", prev)
	}

	// Same titles but a different deadline never matches.
	l.Deadline = "2025-02-15"
	if prev := d.findPrevious(&l, archive); prev != nil {
		t.Errorf("Expected no match across deadlines, got %v", prev)
	}
}
