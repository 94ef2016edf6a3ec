package normalize

import (
	"strings"

	"github.com/acadjobs/job-comb/app/config"
	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/listing"
)

// Normalizer standardizes raw field formats in place. It never fails a
// record: a field that cannot be normalized degrades to its zero value and
// the failure is tracked with the diagnostics collector.
type Normalizer struct {
	cfg  *config.Config
	diag *diagnostics.Collector
}

func New(cfg *config.Config, diag *diagnostics.Collector) *Normalizer {
	return &Normalizer{cfg: cfg, diag: diag}
}

// Run normalizes one record. baseURL, when non-empty, is used to resolve
// relative links.
func (n *Normalizer) Run(l *listing.Listing, baseURL string) {
	n.cleanTextFields(l)
	n.normalizeDates(l)
	n.normalizeURLs(l, baseURL)
	n.normalizeEmail(l)
	n.normalizeLocation(l)
	n.classifyDepartment(l)
	n.extractMaterials(l)
}

func (n *Normalizer) cleanTextFields(l *listing.Listing) {
	l.Title = Text(l.Title)
	l.Institution = Text(l.Institution)
	l.Department = Text(l.Department)
	l.Description = Text(l.Description)
	l.Requirements = Text(l.Requirements)
	l.ContactPerson = Text(l.ContactPerson)
	l.SalaryRange = Text(l.SalaryRange)
	l.Campus = Text(l.Campus)
	l.ApplicationPortal = Text(l.ApplicationPortal)
}

func (n *Normalizer) normalizeDates(l *listing.Listing) {
	if l.Deadline != "" {
		iso, display, err := Date(l.Deadline)
		if err != nil {
			n.diag.TrackNormalization(l.Source, "deadline", l.Deadline, err.Error())
			l.Deadline, l.DeadlineDisplay = "", ""
		} else {
			l.Deadline, l.DeadlineDisplay = iso, display
		}
	}

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"start_date", &l.StartDate},
		{"scraped_date", &l.ScrapedDate},
		{"last_updated", &l.LastUpdated},
	} {
		if *f.value == "" {
			continue
		}
		iso, _, err := Date(*f.value)
		if err != nil {
			n.diag.TrackNormalization(l.Source, f.name, *f.value, err.Error())
			*f.value = ""
		} else {
			*f.value = iso
		}
	}
}

func (n *Normalizer) normalizeURLs(l *listing.Listing, baseURL string) {
	if l.ApplicationLink != "" {
		u, err := URL(l.ApplicationLink, baseURL)
		if err != nil {
			n.diag.TrackNormalization(l.Source, "application_link", l.ApplicationLink, err.Error())
			l.ApplicationLink = ""
		} else {
			l.ApplicationLink = u
		}
	}

	if l.SourceURL != "" {
		u, err := URL(l.SourceURL, baseURL)
		if err != nil {
			n.diag.TrackNormalization(l.Source, "source_url", l.SourceURL, err.Error())
			l.SourceURL = ""
		} else {
			l.SourceURL = u
		}
	}
}

func (n *Normalizer) normalizeEmail(l *listing.Listing) {
	if l.ContactEmail == "" {
		return
	}
	email, err := Email(l.ContactEmail)
	if err != nil {
		n.diag.TrackNormalization(l.Source, "contact_email", l.ContactEmail, err.Error())
		l.ContactEmail = ""
	} else {
		l.ContactEmail = email
	}
}

func (n *Normalizer) normalizeLocation(l *listing.Listing) {
	// Already structured upstream; the enricher fills in the region.
	if l.Location.Country != "" {
		return
	}
	raw := l.LocationRaw
	if raw == "" && l.Location.City != "" {
		// Some scrapers stuff the whole location string into the city slot.
		raw = l.Location.City
	}
	l.Location = Location(Text(raw), n.cfg)
	l.LocationRaw = ""
}

// classifyDepartment assigns the department category by keyword lookup when
// the scraper has not already decided it.
func (n *Normalizer) classifyDepartment(l *listing.Listing) {
	if l.DepartmentCategory != "" {
		return
	}
	haystack := strings.ToLower(l.Department + " " + l.Title)
	for _, set := range n.cfg.Departments {
		for _, kw := range set.Keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				l.DepartmentCategory = set.Name
				return
			}
		}
	}
	l.DepartmentCategory = listing.DepartmentOther
}

func (n *Normalizer) extractMaterials(l *listing.Listing) {
	text := l.Description + " " + l.Requirements
	if l.Materials.LettersOfRecommendation == 0 {
		if count, ok := LetterCount(text); ok {
			l.Materials.LettersOfRecommendation = count
		}
	}
	if l.Materials.ResearchPapers == "" {
		if papers, ok := PaperRequirement(text); ok {
			l.Materials.ResearchPapers = papers
		}
	}
}
