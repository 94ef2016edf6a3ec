package enrich

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/acadjobs/job-comb/app/config"
	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/listing"
	"github.com/acadjobs/job-comb/app/normalize"
)

// Enricher derives computed fields on a normalized record: the stable ID,
// region bucket, job-type classification, specialization labels, materials
// detail, and run metadata. Like the normalizer it mutates in place and
// never fails a record.
type Enricher struct {
	cfg  *config.Config
	diag *diagnostics.Collector
}

func New(cfg *config.Config, diag *diagnostics.Collector) *Enricher {
	return &Enricher{cfg: cfg, diag: diag}
}

// Run enriches one record. runDate (YYYY-MM-DD) seeds processed_date when
// absent.
func (e *Enricher) Run(l *listing.Listing, runDate string) {
	e.ensureID(l)
	e.detectRegion(l)
	e.classifyJobType(l)
	e.extractSpecializations(l)
	e.enhanceMaterials(l)
	l.ApplyDefaults(runDate)
}

// GenerateID derives the stable listing ID from institution, title, and
// deadline: lowercase, trim, join, SHA-256, first 32 hex characters. The
// same inputs always yield the same ID regardless of case or surrounding
// whitespace.
func GenerateID(institution, title, deadline string) string {
	key := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(institution)),
		strings.ToLower(strings.TrimSpace(title)),
		strings.ToLower(strings.TrimSpace(deadline)),
	}, "|")
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:32]
}

func (e *Enricher) ensureID(l *listing.Listing) {
	if l.ID != "" {
		return
	}
	if l.Institution == "" && l.Title == "" {
		e.diag.TrackEnrichment(l.Source, "id", "generating ID without institution or title")
	}
	l.ID = GenerateID(l.Institution, l.Title, l.Deadline)
}

// detectRegion keeps an already-valid region, otherwise derives it from the
// country table. A record with no determinable country lands in
// other_countries with country "Unknown".
func (e *Enricher) detectRegion(l *listing.Listing) {
	if isValidRegion(l.Location.Region) {
		return
	}
	if l.Location.Country == "" {
		l.Location.Country = "Unknown"
		l.Location.Region = listing.RegionOtherCountries
		e.diag.TrackEnrichment(l.Source, "location", "no determinable country")
		return
	}
	l.Location.Region = e.cfg.RegionForCountry(l.Location.Country)
}

func isValidRegion(region string) bool {
	for _, r := range listing.Regions {
		if region == r {
			return true
		}
	}
	return false
}

// classifyJobType scores each configured job type by keyword occurrence
// count over title and description and keeps the highest scorer. Ties go to
// the first-defined type; no keyword hit at all means "other".
func (e *Enricher) classifyJobType(l *listing.Listing) {
	if isValidJobType(l.JobType) {
		return
	}

	haystack := strings.ToLower(l.Title + " " + l.Description)
	bestScore := 0
	best := listing.JobTypeOther
	for _, set := range e.cfg.JobTypes {
		score := 0
		for _, kw := range set.Keywords {
			score += strings.Count(haystack, strings.ToLower(kw))
		}
		if score > bestScore {
			bestScore = score
			best = set.Name
		}
	}
	l.JobType = best
}

func isValidJobType(jobType string) bool {
	for _, jt := range listing.JobTypes {
		if jobType == jt {
			return true
		}
	}
	return false
}

// extractSpecializations unions any pre-existing specializations with every
// configured specialization whose keyword list hits the description or
// requirements. The result is always sorted.
func (e *Enricher) extractSpecializations(l *listing.Listing) {
	haystack := strings.ToLower(l.Description + " " + l.Requirements)

	labels := make(map[string]struct{}, len(l.Specializations))
	for _, s := range l.Specializations {
		labels[s] = struct{}{}
	}

	for _, set := range e.cfg.Specializations {
		for _, kw := range set.Keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				labels[specializationLabel(set.Name)] = struct{}{}
				break
			}
		}
	}

	out := make([]string, 0, len(labels))
	for label := range labels {
		out = append(out, label)
	}
	sort.Strings(out)
	l.Specializations = out
}

// specializationLabel turns a configuration key like "labor_economics" into
// its display label "Labor Economics".
func specializationLabel(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// enhanceMaterials fills letter and paper requirements for records whose
// materials the normalizer has not already populated (records ingested
// pre-normalized skip that stage's extraction).
func (e *Enricher) enhanceMaterials(l *listing.Listing) {
	text := l.Description + " " + l.Requirements
	if l.Materials.LettersOfRecommendation == 0 {
		if count, ok := normalize.LetterCount(text); ok {
			l.Materials.LettersOfRecommendation = count
		}
	}
	if l.Materials.ResearchPapers == "" {
		if papers, ok := normalize.PaperRequirement(text); ok {
			l.Materials.ResearchPapers = papers
		}
	}
	if l.Materials.Other == nil {
		l.Materials.Other = []string{}
	}
}
