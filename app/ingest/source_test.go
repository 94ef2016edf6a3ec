package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/listing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestFileSource_BareArray(t *testing.T) {
	path := writeTempFile(t, "raw.json",
		`[{"title":"Lecturer","institution":"MIT","source":"job_portal"}]`)

	records, err := NewFileSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Lecturer" {
		t.Errorf("Expected one Lecturer record, got %+v", records)
	}
}

func TestFileSource_Envelope(t *testing.T) {
	path := writeTempFile(t, "raw.json",
		`{"listings":[{"title":"Postdoc","institution":"Yale","source":"aea"}]}`)

	records, err := NewFileSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Institution != "Yale" {
		t.Errorf("Expected one Yale record, got %+v", records)
	}
}

func TestFileSource_Errors(t *testing.T) {
	if _, err := NewFileSource("/does/not/exist.json").Fetch(context.Background()); err == nil {
		t.Error("Expected an error for a missing file")
	}

	path := writeTempFile(t, "raw.json", `{broken`)
	if _, err := NewFileSource(path).Fetch(context.Background()); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Academic Jobs</title>
    <link>https://jobs.example</link>
    <item>
      <title>Harvard University: Assistant Professor of Economics</title>
      <link>https://jobs.example/1</link>
      <description>Tenure-track opening in the economics department.</description>
      <category>Labor Economics</category>
      <pubDate>Mon, 02 Jun 2025 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Research Fellow</title>
      <link>https://jobs.example/2</link>
      <description>No institution in this one.</description>
    </item>
  </channel>
</rss>`

func TestFeedSource_Fetch(t *testing.T) {
	diag := diagnostics.NewCollector()
	path := writeTempFile(t, "feed.xml", sampleFeed)

	records, err := NewFeedSource(path, listing.SourceJobPortal, diag).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Institution != "Harvard University" {
		t.Errorf("Expected institution split from title, got %q", first.Institution)
	}
	if first.Title != "Assistant Professor of Economics" {
		t.Errorf("Expected position title, got %q", first.Title)
	}
	if first.Source != listing.SourceJobPortal {
		t.Errorf("Expected source label, got %q", first.Source)
	}
	if first.SourceURL != "https://jobs.example/1" {
		t.Errorf("Expected item link as source URL, got %q", first.SourceURL)
	}
	if first.LastUpdated != "2025-06-02" {
		t.Errorf("Expected last_updated from pubDate, got %q", first.LastUpdated)
	}
	if len(first.Specializations) != 1 || first.Specializations[0] != "Labor Economics" {
		t.Errorf("Expected category carried as specialization, got %v", first.Specializations)
	}

	// The second item has no institution anywhere; that is tracked, not fatal.
	if records[1].Institution != "" {
		t.Errorf("Expected empty institution, got %q", records[1].Institution)
	}
	if diag.Count(diagnostics.CategoryParsing) != 1 {
		t.Errorf("Expected 1 parsing diagnostic, got %d", diag.Count(diagnostics.CategoryParsing))
	}
}

func TestFeedSource_BadFeedFails(t *testing.T) {
	diag := diagnostics.NewCollector()
	path := writeTempFile(t, "feed.xml", "not xml at all")
	if _, err := NewFeedSource(path, listing.SourceJobPortal, diag).Fetch(context.Background()); err == nil {
		t.Error("Expected an error for an unparsable feed")
	}
}
