package validate

import (
	"strings"
	"testing"

	"github.com/acadjobs/job-comb/app/config"
	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/listing"
)

func newTestValidator() *Validator {
	return New(config.Default(), diagnostics.NewCollector())
}

func fullListing() listing.Listing {
	return listing.Listing{
		ID:                 "abc123",
		Title:              "Assistant Professor of Economics",
		Institution:        "Harvard University",
		InstitutionType:    listing.InstitutionUniversity,
		Department:         "Department of Economics",
		DepartmentCategory: listing.DepartmentEconomics,
		JobType:            listing.JobTypeTenureTrack,
		Deadline:           "2027-11-15",
		DeadlineDisplay:    "November 15, 2027",
		StartDate:          "2028-07-01",
		Location: listing.Location{
			City:    "Cambridge",
			State:   "Massachusetts",
			Country: "United States",
			Region:  listing.RegionUnitedStates,
		},
		Description:     strings.Repeat("A tenure-track opening in economics. ", 3),
		Requirements:    "PhD in economics or a related field.",
		Specializations: []string{"Labor Economics"},
		ApplicationLink: "https://econ.harvard.example/apply",
		ContactEmail:    "search@fas.harvard.example",
		Source:          listing.SourceAEA,
		SourceURL:       "https://aea.example/job/1",
		Sources:         []string{listing.SourceAEA},
		ScrapedDate:     "2025-06-01",
		ProcessedDate:   "2025-06-02",
		Materials:       listing.Materials{CV: true, LettersOfRecommendation: 3},
	}
}

func TestRun_ValidListing(t *testing.T) {
	v := newTestValidator()
	l := fullListing()

	result := v.Run(&l)
	if !result.IsValid() {
		t.Errorf("Expected valid listing, got issues: %+v", result.Issues)
	}
	if result.CriticalCount() != 0 {
		t.Errorf("Expected no critical issues, got %d", result.CriticalCount())
	}
}

func TestRun_MissingRequiredFieldsAreCritical(t *testing.T) {
	v := newTestValidator()
	l := fullListing()
	l.Title = ""
	l.Institution = "   "

	result := v.Run(&l)
	if result.IsValid() {
		t.Error("Expected listing with missing required fields to be invalid")
	}
	if result.CriticalCount() != 2 {
		t.Errorf("Expected 2 critical issues, got %d: %+v", result.CriticalCount(), result.Issues)
	}
}

func TestRun_MissingDeadlineIsCritical(t *testing.T) {
	v := newTestValidator()
	l := fullListing()
	l.Deadline = ""
	l.DeadlineDisplay = ""

	result := v.Run(&l)
	if result.IsValid() {
		t.Error("Expected listing without a deadline to be invalid")
	}
	if result.CriticalCount() != 2 {
		t.Errorf("Expected 2 critical issues, got %d: %+v", result.CriticalCount(), result.Issues)
	}
}

func TestRun_BadEnumOnRequiredFieldIsCritical(t *testing.T) {
	v := newTestValidator()
	l := fullListing()
	l.JobType = "part-time"

	result := v.Run(&l)
	if !hasIssue(result, "job_type", TypeSchema) {
		t.Errorf("Expected a schema issue on job_type, got %+v", result.Issues)
	}
	if result.IsValid() || result.CriticalCount() != 1 {
		t.Errorf("Expected 1 critical enum issue, got %d criticals, valid=%v",
			result.CriticalCount(), result.IsValid())
	}
}

func TestRun_FormatChecks(t *testing.T) {
	v := newTestValidator()
	l := fullListing()
	l.Deadline = "15 November 2025"
	l.ApplicationLink = "econ.harvard.example/apply"
	l.ContactEmail = "not-an-email"

	result := v.Run(&l)
	for _, want := range []string{"deadline", "application_link", "contact_email"} {
		if !hasIssue(result, want, TypeFormat) {
			t.Errorf("Expected a format issue on %s, got %+v", want, result.Issues)
		}
	}
	// deadline and application_link are required, contact_email is not.
	if result.CriticalCount() != 2 {
		t.Errorf("Expected 2 critical format issues, got %d: %+v", result.CriticalCount(), result.Issues)
	}
}

func TestRun_DateLogic(t *testing.T) {
	v := newTestValidator()
	l := fullListing()
	l.Deadline = "2020-01-15"
	l.ScrapedDate = "2025-06-10"
	l.ProcessedDate = "2025-06-01"

	result := v.Run(&l)
	if !hasIssue(result, "deadline", TypeDateLogic) {
		t.Errorf("Expected a stale-deadline warning, got %+v", result.Issues)
	}
	if !hasIssue(result, "processed_date", TypeDateLogic) {
		t.Errorf("Expected a processed-before-scraped warning, got %+v", result.Issues)
	}
	if !result.IsValid() {
		t.Error("Expected date-logic findings to be warnings only")
	}
}

func TestRun_PlaceholderAndQuality(t *testing.T) {
	v := newTestValidator()
	l := fullListing()
	l.ApplicationLink = "https://example.com/apply"
	l.Institution = "Test University"
	l.Description = "Short."

	result := v.Run(&l)
	if !hasIssue(result, "application_link", TypePlaceholder) {
		t.Errorf("Expected a placeholder warning, got %+v", result.Issues)
	}
	if !hasIssue(result, "institution", TypeQuality) {
		t.Errorf("Expected a test-data institution warning, got %+v", result.Issues)
	}
	if !hasIssue(result, "description", TypeQuality) {
		t.Errorf("Expected a short-description warning, got %+v", result.Issues)
	}
}

func TestRun_JobTypeConflict(t *testing.T) {
	v := newTestValidator()
	l := fullListing()
	l.Title = "Visiting Assistant Professor"
	l.JobType = listing.JobTypeTenureTrack

	result := v.Run(&l)
	if !hasIssue(result, "job_type", TypeQuality) {
		t.Errorf("Expected a job-type conflict warning, got %+v", result.Issues)
	}
}

func TestRun_ConsistencyChecks(t *testing.T) {
	v := newTestValidator()
	l := fullListing()
	l.Location.Region = listing.RegionCanada
	l.Sources = []string{listing.SourceJobPortal}

	result := v.Run(&l)
	if !hasIssue(result, "region", TypeConsistency) {
		t.Errorf("Expected a region/country mismatch warning, got %+v", result.Issues)
	}
	if !hasIssue(result, "sources", TypeConsistency) {
		t.Errorf("Expected a source-missing-from-sources warning, got %+v", result.Issues)
	}
}

func TestRunBatch_Counts(t *testing.T) {
	v := newTestValidator()

	good := fullListing()
	bad := fullListing()
	bad.ID = ""

	batch := v.RunBatch([]listing.Listing{good, bad})
	if batch.Total != 2 {
		t.Errorf("Expected total 2, got %d", batch.Total)
	}
	if batch.Valid != 1 || batch.Invalid != 1 {
		t.Errorf("Expected 1 valid and 1 invalid, got %d/%d", batch.Valid, batch.Invalid)
	}
	if batch.CriticalErrors != 1 {
		t.Errorf("Expected 1 critical error, got %d", batch.CriticalErrors)
	}
	if len(batch.Results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(batch.Results))
	}
}

func hasIssue(r Result, field, validationType string) bool {
	for _, issue := range r.Issues {
		if issue.Field == field && issue.Type == validationType {
			return true
		}
	}
	return false
}
