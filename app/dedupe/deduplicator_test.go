package dedupe

import (
	"reflect"
	"testing"

	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/listing"
)

func TestNormalizeInstitution(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Harvard University", "harvard"},
		{"  Harvard  ", "harvard"},
		{"MIT", "mit"},
		{"London School of Economics", "london school of economics"},
		{"Peking University Institute", "peking"},
		{"University", "university"},
	}
	for _, tt := range tests {
		if got := NormalizeInstitution(tt.in); got != tt.want {
			t.Errorf("NormalizeInstitution(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	d := New(diagnostics.NewCollector())

	if got := d.similarity("Assistant Professor", "assistant professor"); got != 100 {
		t.Errorf("Expected case-insensitive exact match to score 100, got %v", got)
	}
	got := d.similarity("Assistant Professor of Economics", "Assistant Prof. of Economics")
	if got < 85 {
		t.Errorf("Expected abbreviated title to clear the threshold, got %v", got)
	}
	got = d.similarity("Assistant Professor of Economics", "Dean of Admissions")
	if got >= 85 {
		t.Errorf("Expected unrelated titles to stay below the threshold, got %v", got)
	}
	if got := d.similarity("", ""); got != 100 {
		t.Errorf("Expected two empty strings to score 100, got %v", got)
	}
}

// Two postings of the same job from different sources collapse into one
// record carrying both sources, with the higher-priority source's fields
// winning and its gaps filled from the other.
func TestRun_MergesCrossSourceDuplicates(t *testing.T) {
	d := New(diagnostics.NewCollector())

	items := []listing.Listing{
		{
			ID:          "a1",
			Title:       "Assistant Professor of Economics",
			Institution: "Harvard University",
			Deadline:    "2025-01-15",
			Source:      listing.SourceAEA,
			SourceURL:   "https://aea.example/job/1",
			Description: "Tenure-track opening.",
		},
		{
			ID:           "b2",
			Title:        "Assistant Prof. of Economics",
			Institution:  "Harvard",
			Deadline:     "2025-01-15",
			Source:       listing.SourceUniversityWebsite,
			SourceURL:    "https://econ.harvard.example/jobs/1",
			ContactEmail: "search@harvard.example",
		},
	}

	out := d.Run(items)
	if len(out) != 1 {
		t.Fatalf("Expected 1 merged listing, got %d", len(out))
	}

	m := out[0]
	if m.ID != "a1" {
		t.Errorf("Expected the aea record to be the merge base, got ID %q", m.ID)
	}
	if m.Title != "Assistant Professor of Economics" {
		t.Errorf("Expected base title kept, got %q", m.Title)
	}
	if m.ContactEmail != "search@harvard.example" {
		t.Errorf("Expected contact email filled from the duplicate, got %q", m.ContactEmail)
	}
	if m.Description != "Tenure-track opening." {
		t.Errorf("Expected base description kept, got %q", m.Description)
	}
	want := []string{listing.SourceAEA, listing.SourceUniversityWebsite}
	if !reflect.DeepEqual(m.Sources, want) {
		t.Errorf("Expected sources %v, got %v", want, m.Sources)
	}
	if m.SourceURL != "https://aea.example/job/1" {
		t.Errorf("Expected the higher-priority source URL, got %q", m.SourceURL)
	}
}

func TestRun_DifferentDeadlinesStaySeparate(t *testing.T) {
	d := New(diagnostics.NewCollector())

	items := []listing.Listing{
		{Title: "Assistant Professor", Institution: "Harvard University", Deadline: "2025-01-15", Source: listing.SourceAEA},
		{Title: "Assistant Professor", Institution: "Harvard University", Deadline: "2025-02-15", Source: listing.SourceAEA},
	}

	out := d.Run(items)
	if len(out) != 2 {
		t.Errorf("Expected 2 listings, got %d", len(out))
	}
}

func TestRun_DissimilarTitlesStaySeparate(t *testing.T) {
	d := New(diagnostics.NewCollector())

	items := []listing.Listing{
		{Title: "Assistant Professor of Economics", Institution: "Harvard University", Deadline: "2025-01-15", Source: listing.SourceAEA},
		{Title: "Department Administrator", Institution: "Harvard University", Deadline: "2025-01-15", Source: listing.SourceJobPortal},
	}

	out := d.Run(items)
	if len(out) != 2 {
		t.Errorf("Expected 2 listings, got %d", len(out))
	}
}

func TestRun_Idempotent(t *testing.T) {
	d := New(diagnostics.NewCollector())

	items := []listing.Listing{
		{Title: "Assistant Professor of Economics", Institution: "Harvard University", Deadline: "2025-01-15", Source: listing.SourceAEA},
		{Title: "Assistant Prof. of Economics", Institution: "Harvard", Deadline: "2025-01-15", Source: listing.SourceUniversityWebsite},
		{Title: "Lecturer in Statistics", Institution: "MIT", Deadline: "2025-03-01", Source: listing.SourceJobPortal},
	}

	once := d.Run(items)
	twice := d.Run(once)
	if len(twice) != len(once) {
		t.Errorf("Expected a second pass to change nothing, got %d then %d", len(once), len(twice))
	}
}

func TestMerge_FillsEmptyFields(t *testing.T) {
	d := New(diagnostics.NewCollector())

	cluster := []listing.Listing{
		{
			Title:       "Postdoctoral Fellow",
			Institution: "MIT",
			Source:      listing.SourceUniversityWebsite,
			Materials:   listing.Materials{CV: true, LettersOfRecommendation: 3},
		},
		{
			Title:           "Postdoctoral Fellow",
			Institution:     "MIT",
			Source:          listing.SourceInstituteWebsite,
			StartDate:       "2025-09-01",
			Specializations: []string{"Macroeconomics"},
			Materials:       listing.Materials{CoverLetter: true, ResearchPapers: "one job market paper"},
		},
	}

	m := d.merge(cluster)
	if m.Source != listing.SourceUniversityWebsite {
		t.Errorf("Expected the higher-priority member as base, got %q", m.Source)
	}
	if m.StartDate != "2025-09-01" {
		t.Errorf("Expected start date filled, got %q", m.StartDate)
	}
	if !reflect.DeepEqual(m.Specializations, []string{"Macroeconomics"}) {
		t.Errorf("Expected specializations unioned, got %v", m.Specializations)
	}
	if !m.Materials.CV || !m.Materials.CoverLetter {
		t.Error("Expected material booleans OR-merged")
	}
	if m.Materials.LettersOfRecommendation != 3 {
		t.Errorf("Expected letter count kept, got %d", m.Materials.LettersOfRecommendation)
	}
	if m.Materials.ResearchPapers != "one job market paper" {
		t.Errorf("Expected paper requirement filled, got %q", m.Materials.ResearchPapers)
	}
}
