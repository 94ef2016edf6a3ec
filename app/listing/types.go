package listing

import (
	"sort"
	"strings"
)

// Canonical record types shared by every pipeline stage.

// Institution types.
const (
	InstitutionUniversity        = "university"
	InstitutionResearchInstitute = "research_institute"
	InstitutionThinkTank         = "think_tank"
	InstitutionJobPortal         = "job_portal"
)

// Department categories.
const (
	DepartmentEconomics  = "Economics"
	DepartmentManagement = "Management"
	DepartmentMarketing  = "Marketing"
	DepartmentOther      = "Other"
)

// Job types.
const (
	JobTypeTenureTrack = "tenure-track"
	JobTypeVisiting    = "visiting"
	JobTypePostdoc     = "postdoc"
	JobTypeLecturer    = "lecturer"
	JobTypeOther       = "other"
)

// Regions. Every listing is bucketed into exactly one of these six.
const (
	RegionUnitedStates   = "united_states"
	RegionMainlandChina  = "mainland_china"
	RegionUnitedKingdom  = "united_kingdom"
	RegionCanada         = "canada"
	RegionAustralia      = "australia"
	RegionOtherCountries = "other_countries"
)

// Sources, in no particular order; see SourcePriority for merge ranking.
const (
	SourceAEA               = "aea"
	SourceUniversityWebsite = "university_website"
	SourceInstituteWebsite  = "institute_website"
	SourceJobPortal         = "job_portal"
)

// Regions lists the six valid region values.
var Regions = []string{
	RegionUnitedStates,
	RegionMainlandChina,
	RegionUnitedKingdom,
	RegionCanada,
	RegionAustralia,
	RegionOtherCountries,
}

// JobTypes lists the valid job_type values.
var JobTypes = []string{
	JobTypeTenureTrack,
	JobTypeVisiting,
	JobTypePostdoc,
	JobTypeLecturer,
	JobTypeOther,
}

// InstitutionTypes lists the valid institution_type values.
var InstitutionTypes = []string{
	InstitutionUniversity,
	InstitutionResearchInstitute,
	InstitutionThinkTank,
	InstitutionJobPortal,
}

// DepartmentCategories lists the valid department_category values.
var DepartmentCategories = []string{
	DepartmentEconomics,
	DepartmentManagement,
	DepartmentMarketing,
	DepartmentOther,
}

// SourceValues lists the valid source values.
var SourceValues = []string{
	SourceAEA,
	SourceUniversityWebsite,
	SourceInstituteWebsite,
	SourceJobPortal,
}

// SourcePriority ranks sources for conflict resolution during merge.
// Unknown sources rank 0.
var SourcePriority = map[string]int{
	SourceAEA:               3,
	SourceUniversityWebsite: 2,
	SourceJobPortal:         2,
	SourceInstituteWebsite:  1,
}

// Location describes where a position is based. Country is always set after
// normalization ("Unknown" when undeterminable); Region is always one of the
// six region constants.
type Location struct {
	City     string `json:"city,omitempty" yaml:"city,omitempty"`
	State    string `json:"state,omitempty" yaml:"state,omitempty"`
	Province string `json:"province,omitempty" yaml:"province,omitempty"`
	Country  string `json:"country" yaml:"country"`
	Region   string `json:"region" yaml:"region"`
}

// IsEmpty reports whether no location component is set.
func (l Location) IsEmpty() bool {
	return l.City == "" && l.State == "" && l.Province == "" && l.Country == "" && l.Region == ""
}

// Materials describes the application materials a posting asks for.
// ResearchPapers holds either "true" (papers required, count unknown) or a
// free-form requirement such as "job market paper + 2 additional papers";
// empty means not stated.
type Materials struct {
	CV                      bool     `json:"cv"`
	CoverLetter             bool     `json:"cover_letter"`
	ResearchStatement       bool     `json:"research_statement"`
	TeachingStatement       bool     `json:"teaching_statement"`
	TeachingPortfolio       bool     `json:"teaching_portfolio"`
	Transcripts             bool     `json:"transcripts"`
	DiversityStatement      bool     `json:"diversity_statement"`
	LettersOfRecommendation int      `json:"letters_of_recommendation"`
	ResearchPapers          string   `json:"research_papers,omitempty"`
	Other                   []string `json:"other"`
}

// IsEmpty reports whether no material requirement has been recorded.
func (m Materials) IsEmpty() bool {
	return !m.CV && !m.CoverLetter && !m.ResearchStatement && !m.TeachingStatement &&
		!m.TeachingPortfolio && !m.Transcripts && !m.DiversityStatement &&
		m.LettersOfRecommendation == 0 && m.ResearchPapers == "" && len(m.Other) == 0
}

// Listing is the canonical job record. The external scraper layer produces
// loosely populated Listings (any subset of fields); every pipeline stage
// fills fields in place and never drops data outside of duplicate merging.
// Date fields are ISO strings (YYYY-MM-DD) once normalized.
type Listing struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Institution        string    `json:"institution"`
	InstitutionType    string    `json:"institution_type"`
	Department         string    `json:"department"`
	DepartmentCategory string    `json:"department_category"`
	LocationRaw        string    `json:"location_raw,omitempty"`
	Location           Location  `json:"location"`
	JobType            string    `json:"job_type"`
	Deadline           string    `json:"deadline"`
	DeadlineDisplay    string    `json:"deadline_display"`
	StartDate          string    `json:"start_date,omitempty"`
	SalaryRange        string    `json:"salary_range,omitempty"`
	Description        string    `json:"description"`
	Requirements       string    `json:"requirements"`
	Specializations    []string  `json:"specializations"`
	ApplicationLink    string    `json:"application_link"`
	ApplicationPortal  string    `json:"application_portal,omitempty"`
	ContactEmail       string    `json:"contact_email,omitempty"`
	ContactPerson      string    `json:"contact_person,omitempty"`
	Materials          Materials `json:"materials_required"`
	Source             string    `json:"source"`
	SourceURL          string    `json:"source_url"`
	Sources            []string  `json:"sources"`
	ScrapedDate        string    `json:"scraped_date"`
	ProcessedDate      string    `json:"processed_date"`
	LastUpdated        string    `json:"last_updated,omitempty"`
	Campus             string    `json:"campus,omitempty"`
	IsActive           bool      `json:"is_active"`
	IsNew              bool      `json:"is_new"`
}

const completenessFieldCount = 12

// CompletenessScore returns the percentage (0-100) of the twelve designated
// informative fields that are non-empty on the record.
func (l *Listing) CompletenessScore() float64 {
	filled := 0
	for _, present := range []bool{
		l.Title != "",
		l.Institution != "",
		l.Department != "",
		l.Location.Country != "",
		l.JobType != "",
		l.Deadline != "",
		l.Description != "",
		l.Requirements != "",
		len(l.Specializations) > 0,
		l.ApplicationLink != "",
		l.ContactEmail != "",
		l.StartDate != "",
	} {
		if present {
			filled++
		}
	}
	return float64(filled) / completenessFieldCount * 100
}

// ApplyDefaults is the single default-filling pass run after normalization.
// It seeds run metadata and guarantees the collection fields are non-nil so
// downstream stages and JSON output never see null where a list belongs.
func (l *Listing) ApplyDefaults(runDate string) {
	if l.ProcessedDate == "" {
		l.ProcessedDate = runDate
	}
	l.Sources = UnionSources(l.Sources, l.Source)
	if l.Specializations == nil {
		l.Specializations = []string{}
	}
	if l.Materials.Other == nil {
		l.Materials.Other = []string{}
	}
	// Overwritten by the deduplicator's archive comparison.
	l.IsActive = true
	l.IsNew = true
}

// UnionSources returns the sorted, de-duplicated union of the given source
// list and any extra source identifiers, skipping empties.
func UnionSources(sources []string, extra ...string) []string {
	seen := make(map[string]struct{}, len(sources)+len(extra))
	out := make([]string, 0, len(sources)+len(extra))
	for _, s := range append(append([]string{}, sources...), extra...) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
