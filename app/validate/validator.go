package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/acadjobs/job-comb/app/config"
	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/listing"
)

// Validation type labels, recorded on issues and in diagnostics.
const (
	TypeSchema       = "schema"
	TypeFormat       = "format"
	TypeDateLogic    = "date_logic"
	TypePlaceholder  = "placeholder"
	TypeCompleteness = "completeness"
	TypeQuality      = "quality"
	TypeConsistency  = "consistency"
)

// requiredFields are the attributes every publishable record must carry.
// Schema, enum, and format errors on these fields are critical; errors on
// optional fields produce warnings. The validator only reports — the
// orchestrator decides what to do with invalid records.
var requiredFields = map[string]bool{
	"id":                  true,
	"title":               true,
	"institution":         true,
	"institution_type":    true,
	"department":          true,
	"department_category": true,
	"location":            true,
	"region":              true,
	"job_type":            true,
	"deadline":            true,
	"deadline_display":    true,
	"description":         true,
	"requirements":        true,
	"application_link":    true,
	"source":              true,
	"source_url":          true,
	"scraped_date":        true,
	"processed_date":      true,
}

// Issue is one validation finding on a single record.
type Issue struct {
	Field    string `json:"field"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	Critical bool   `json:"critical"`
}

// Result aggregates the findings for one record. A record is valid iff it
// has zero critical issues, regardless of warnings.
type Result struct {
	ID     string  `json:"id"`
	Issues []Issue `json:"issues"`
}

// IsValid reports whether the record has no critical issues.
func (r *Result) IsValid() bool {
	for _, issue := range r.Issues {
		if issue.Critical {
			return false
		}
	}
	return true
}

// CriticalCount returns the number of critical issues.
func (r *Result) CriticalCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Critical {
			n++
		}
	}
	return n
}

// WarningCount returns the number of non-critical issues.
func (r *Result) WarningCount() int {
	return len(r.Issues) - r.CriticalCount()
}

// BatchResult aggregates validation over a whole batch.
type BatchResult struct {
	Total          int      `json:"total"`
	Valid          int      `json:"valid"`
	Invalid        int      `json:"invalid"`
	CriticalErrors int      `json:"critical_errors"`
	Warnings       int      `json:"warnings"`
	Results        []Result `json:"results"`
}

// Validator checks schema conformance plus data-quality and consistency
// heuristics. It records findings; it never drops records itself.
type Validator struct {
	cfg  *config.Config
	diag *diagnostics.Collector
}

func New(cfg *config.Config, diag *diagnostics.Collector) *Validator {
	return &Validator{cfg: cfg, diag: diag}
}

// Run validates one record.
func (v *Validator) Run(l *listing.Listing) Result {
	result := Result{ID: l.ID}

	v.checkRequired(l, &result)
	v.checkEnums(l, &result)
	v.checkFormats(l, &result)
	v.checkDateLogic(l, &result)
	v.checkPlaceholders(l, &result)
	v.checkCompleteness(l, &result)
	v.checkQuality(l, &result)
	v.checkConsistency(l, &result)

	for _, issue := range result.Issues {
		v.diag.TrackValidation(l.Source, issue.Type, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}

	return result
}

// RunBatch validates a whole batch and aggregates the counts.
func (v *Validator) RunBatch(items []listing.Listing) BatchResult {
	batch := BatchResult{
		Total:   len(items),
		Results: make([]Result, 0, len(items)),
	}
	for i := range items {
		result := v.Run(&items[i])
		if result.IsValid() {
			batch.Valid++
		} else {
			batch.Invalid++
		}
		batch.CriticalErrors += result.CriticalCount()
		batch.Warnings += result.WarningCount()
		batch.Results = append(batch.Results, result)
	}
	return batch
}

func (r *Result) add(field, validationType, message string) {
	r.Issues = append(r.Issues, Issue{
		Field:    field,
		Type:     validationType,
		Message:  message,
		Critical: requiredFields[field],
	})
}

// addWarning records an issue that is a warning regardless of field.
func (r *Result) addWarning(field, validationType, message string) {
	r.Issues = append(r.Issues, Issue{
		Field:   field,
		Type:    validationType,
		Message: message,
	})
}

func (v *Validator) checkRequired(l *listing.Listing, result *Result) {
	for field, value := range map[string]string{
		"id":                  l.ID,
		"title":               l.Title,
		"institution":         l.Institution,
		"institution_type":    l.InstitutionType,
		"department":          l.Department,
		"department_category": l.DepartmentCategory,
		"job_type":            l.JobType,
		"deadline":            l.Deadline,
		"deadline_display":    l.DeadlineDisplay,
		"description":         l.Description,
		"requirements":        l.Requirements,
		"application_link":    l.ApplicationLink,
		"source":              l.Source,
		"source_url":          l.SourceURL,
		"scraped_date":        l.ScrapedDate,
		"processed_date":      l.ProcessedDate,
	} {
		if strings.TrimSpace(value) == "" {
			result.add(field, TypeSchema, "required field is missing")
		}
	}

	if l.Location.Country == "" {
		result.add("location", TypeSchema, "location has no country")
	}
	if l.Location.Region == "" {
		result.add("region", TypeSchema, "location has no region")
	}
}

func (v *Validator) checkEnums(l *listing.Listing, result *Result) {
	for _, check := range []struct {
		field   string
		value   string
		allowed []string
	}{
		{"institution_type", l.InstitutionType, listing.InstitutionTypes},
		{"department_category", l.DepartmentCategory, listing.DepartmentCategories},
		{"job_type", l.JobType, listing.JobTypes},
		{"region", l.Location.Region, listing.Regions},
		{"source", l.Source, listing.SourceValues},
	} {
		if check.value == "" {
			continue
		}
		if !contains(check.allowed, check.value) {
			result.add(check.field, TypeSchema,
				fmt.Sprintf("value %q is not one of %v", check.value, check.allowed))
		}
	}
}

func (v *Validator) checkFormats(l *listing.Listing, result *Result) {
	for field, value := range map[string]string{
		"deadline":       l.Deadline,
		"start_date":     l.StartDate,
		"scraped_date":   l.ScrapedDate,
		"processed_date": l.ProcessedDate,
		"last_updated":   l.LastUpdated,
	} {
		if value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			result.add(field, TypeFormat, fmt.Sprintf("not an ISO date: %q", value))
		}
	}

	for field, value := range map[string]string{
		"application_link": l.ApplicationLink,
		"source_url":       l.SourceURL,
	} {
		if value == "" {
			continue
		}
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			result.add(field, TypeFormat, fmt.Sprintf("not an absolute URL: %q", value))
		}
	}

	if l.ContactEmail != "" {
		at := strings.Index(l.ContactEmail, "@")
		if at <= 0 || !strings.Contains(l.ContactEmail[at:], ".") {
			result.add("contact_email", TypeFormat, fmt.Sprintf("not an email address: %q", l.ContactEmail))
		}
	}
}

func (v *Validator) checkDateLogic(l *listing.Listing, result *Result) {
	if deadline, err := time.Parse("2006-01-02", l.Deadline); err == nil {
		if time.Since(deadline) > 730*24*time.Hour {
			result.addWarning("deadline", TypeDateLogic,
				fmt.Sprintf("deadline %s is more than two years in the past", l.Deadline))
		}
	}

	if l.ScrapedDate != "" && l.ProcessedDate != "" {
		scraped, err1 := time.Parse("2006-01-02", l.ScrapedDate)
		processed, err2 := time.Parse("2006-01-02", l.ProcessedDate)
		if err1 == nil && err2 == nil && processed.Before(scraped) {
			result.addWarning("processed_date", TypeDateLogic,
				"processed_date is earlier than scraped_date")
		}
	}
}

func (v *Validator) checkPlaceholders(l *listing.Listing, result *Result) {
	for field, value := range map[string]string{
		"application_link": l.ApplicationLink,
		"source_url":       l.SourceURL,
	} {
		lower := strings.ToLower(value)
		if strings.Contains(lower, "example.com") || strings.Contains(lower, "test.com") {
			result.addWarning(field, TypePlaceholder, fmt.Sprintf("placeholder URL: %q", value))
		}
	}
}

func (v *Validator) checkCompleteness(l *listing.Listing, result *Result) {
	for field, value := range map[string]string{
		"description":  l.Description,
		"requirements": l.Requirements,
		"job_type":     l.JobType,
		"department":   l.Department,
	} {
		if strings.TrimSpace(value) == "" {
			result.addWarning(field, TypeCompleteness, "important field is empty")
		}
	}

	if l.Location.Country == "" {
		result.addWarning("location", TypeCompleteness, "location has no country")
	}
	if l.Location.City == "" && l.Location.State == "" {
		result.addWarning("location", TypeCompleteness, "location has neither city nor state")
	}
	if l.Materials.IsEmpty() {
		result.addWarning("materials_required", TypeCompleteness, "no application materials recorded")
	}
	if len(l.Specializations) == 0 {
		result.addWarning("specializations", TypeCompleteness, "no specializations recorded")
	}
}

// jobTypeConflicts maps a job type to title keywords that contradict it.
var jobTypeConflicts = map[string][]string{
	listing.JobTypeTenureTrack: {"visiting", "postdoc", "lecturer"},
	listing.JobTypeVisiting:    {"tenure-track", "tenure track"},
	listing.JobTypePostdoc:     {"tenure-track", "tenure track"},
}

func (v *Validator) checkQuality(l *listing.Listing, result *Result) {
	if n := len(l.Title); n > 0 && (n < 5 || n > 200) {
		result.addWarning("title", TypeQuality, fmt.Sprintf("suspicious title length: %d", n))
	}
	if n := len(l.Description); n > 0 && n < 50 {
		result.addWarning("description", TypeQuality, fmt.Sprintf("description is very short: %d characters", n))
	}

	inst := strings.ToLower(l.Institution)
	if n := len(l.Institution); n > 0 && n < 2 {
		result.addWarning("institution", TypeQuality, "institution name is too short")
	}
	if strings.Contains(inst, "test") || strings.Contains(inst, "example") {
		result.addWarning("institution", TypeQuality, fmt.Sprintf("institution name looks like test data: %q", l.Institution))
	}

	title := strings.ToLower(l.Title)
	for _, conflict := range jobTypeConflicts[l.JobType] {
		if strings.Contains(title, conflict) {
			result.addWarning("job_type", TypeQuality,
				fmt.Sprintf("job_type %q conflicts with title keyword %q", l.JobType, conflict))
			break
		}
	}
}

func (v *Validator) checkConsistency(l *listing.Listing, result *Result) {
	if l.Location.Country != "" && l.Location.Region != "" {
		derived := v.cfg.RegionForCountry(l.Location.Country)
		if derived != l.Location.Region {
			result.addWarning("region", TypeConsistency,
				fmt.Sprintf("region %q does not match country %q (expected %q)",
					l.Location.Region, l.Location.Country, derived))
		}
	}

	if l.Source != "" && !contains(l.Sources, l.Source) {
		result.addWarning("sources", TypeConsistency,
			fmt.Sprintf("source %q is missing from sources %v", l.Source, l.Sources))
	}
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
