package dedupe

import (
	"sort"
	"time"

	"github.com/acadjobs/job-comb/app/listing"
)

// merge collapses a duplicate cluster into one record. The base is the
// member with the highest (source priority, completeness, last_updated)
// rank; every other member fills the base's empty fields. Sources become
// the union of all members' sources; source_url comes from the
// highest-priority member that has one.
func (d *Deduplicator) merge(cluster []listing.Listing) listing.Listing {
	if len(cluster) == 1 {
		return cluster[0]
	}

	sort.SliceStable(cluster, func(i, j int) bool {
		pi := listing.SourcePriority[cluster[i].Source]
		pj := listing.SourcePriority[cluster[j].Source]
		if pi != pj {
			return pi > pj
		}
		ci := cluster[i].CompletenessScore()
		cj := cluster[j].CompletenessScore()
		if ci != cj {
			return ci > cj
		}
		return lastUpdated(&cluster[i]).After(lastUpdated(&cluster[j]))
	})

	base := cluster[0]
	sources := append([]string{}, base.Sources...)
	sources = append(sources, base.Source)

	urlPriority := -1
	urlChoice := ""
	if base.SourceURL != "" {
		urlPriority = listing.SourcePriority[base.Source]
		urlChoice = base.SourceURL
	}

	for i := 1; i < len(cluster); i++ {
		other := cluster[i]
		fillListing(&base, &other)

		sources = append(sources, other.Sources...)
		sources = append(sources, other.Source)

		if other.SourceURL != "" && listing.SourcePriority[other.Source] > urlPriority {
			urlPriority = listing.SourcePriority[other.Source]
			urlChoice = other.SourceURL
		}
	}

	base.Sources = listing.UnionSources(sources)
	base.SourceURL = urlChoice
	return base
}

// fillListing copies every field except id, source, source_url, and sources
// from other into base wherever base's value is empty. Sub-structures merge
// recursively with the same prefer-non-empty rule; sequences merge as a
// value-deduplicated union.
func fillListing(base, other *listing.Listing) {
	fillString(&base.Title, other.Title)
	fillString(&base.Institution, other.Institution)
	fillString(&base.InstitutionType, other.InstitutionType)
	fillString(&base.Department, other.Department)
	fillString(&base.DepartmentCategory, other.DepartmentCategory)
	fillString(&base.JobType, other.JobType)
	fillString(&base.Deadline, other.Deadline)
	fillString(&base.DeadlineDisplay, other.DeadlineDisplay)
	fillString(&base.StartDate, other.StartDate)
	fillString(&base.SalaryRange, other.SalaryRange)
	fillString(&base.Description, other.Description)
	fillString(&base.Requirements, other.Requirements)
	fillString(&base.ApplicationLink, other.ApplicationLink)
	fillString(&base.ApplicationPortal, other.ApplicationPortal)
	fillString(&base.ContactEmail, other.ContactEmail)
	fillString(&base.ContactPerson, other.ContactPerson)
	fillString(&base.ScrapedDate, other.ScrapedDate)
	fillString(&base.ProcessedDate, other.ProcessedDate)
	fillString(&base.LastUpdated, other.LastUpdated)
	fillString(&base.Campus, other.Campus)

	fillLocation(&base.Location, other.Location)
	fillMaterials(&base.Materials, other.Materials)

	base.Specializations = unionStrings(base.Specializations, other.Specializations)
}

func fillLocation(base *listing.Location, other listing.Location) {
	fillString(&base.City, other.City)
	fillString(&base.State, other.State)
	fillString(&base.Province, other.Province)
	fillString(&base.Country, other.Country)
	fillString(&base.Region, other.Region)
}

func fillMaterials(base *listing.Materials, other listing.Materials) {
	base.CV = base.CV || other.CV
	base.CoverLetter = base.CoverLetter || other.CoverLetter
	base.ResearchStatement = base.ResearchStatement || other.ResearchStatement
	base.TeachingStatement = base.TeachingStatement || other.TeachingStatement
	base.TeachingPortfolio = base.TeachingPortfolio || other.TeachingPortfolio
	base.Transcripts = base.Transcripts || other.Transcripts
	base.DiversityStatement = base.DiversityStatement || other.DiversityStatement
	if base.LettersOfRecommendation == 0 {
		base.LettersOfRecommendation = other.LettersOfRecommendation
	}
	fillString(&base.ResearchPapers, other.ResearchPapers)
	base.Other = unionStrings(base.Other, other.Other)
}

func fillString(base *string, other string) {
	if *base == "" {
		*base = other
	}
}

// unionStrings merges two sequences into a value-deduplicated union,
// preserving first-seen order.
func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func lastUpdated(l *listing.Listing) time.Time {
	t, err := time.Parse("2006-01-02", l.LastUpdated)
	if err != nil {
		return time.Time{}
	}
	return t
}
