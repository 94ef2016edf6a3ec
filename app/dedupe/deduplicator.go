package dedupe

import (
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/adrg/strutil/metrics"

	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/listing"
)

// DefaultThreshold is the minimum title similarity (0-100) for two listings
// in the same group to be considered duplicates.
const DefaultThreshold = 85.0

// institutionSuffixes are stripped from the end of institution names when
// building grouping keys, so "Harvard University" and "Harvard" group
// together.
var institutionSuffixes = []string{
	"university", "college", "school", "institute", "institution",
	"center", "centre",
}

// Deduplicator groups listings by institution and deadline, clusters fuzzy
// title matches within each group, and merges each cluster into a single
// record.
type Deduplicator struct {
	diag      *diagnostics.Collector
	threshold float64
	lev       *metrics.Levenshtein
}

func New(diag *diagnostics.Collector) *Deduplicator {
	// Substitutions cost 2 so the distance matches the classic
	// insert/delete ratio used for fuzzy title matching.
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false
	lev.ReplaceCost = 2
	return &Deduplicator{
		diag:      diag,
		threshold: DefaultThreshold,
		lev:       lev,
	}
}

// NormalizeInstitution lowercases and trims an institution name, strips
// trailing organizational suffixes, and collapses whitespace.
func NormalizeInstitution(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	for changed := true; changed; {
		changed = false
		for _, suffix := range institutionSuffixes {
			if strings.HasSuffix(s, " "+suffix) {
				s = strings.TrimSpace(strings.TrimSuffix(s, " "+suffix))
				changed = true
			}
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

// GroupKey is the deduplication grouping key: normalized institution plus
// deadline.
func GroupKey(l *listing.Listing) string {
	return NormalizeInstitution(l.Institution) + "||" + l.Deadline
}

// similarity returns a 0-100 Levenshtein ratio: edit distance with
// substitution cost 2, scaled by the combined length of both strings.
func (d *Deduplicator) similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 100
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 0
	}
	dist := d.lev.Distance(a, b)
	return 100 * (1 - float64(dist)/float64(total))
}

// Run deduplicates the batch. Groups of size one pass through unchanged;
// larger groups are clustered by title similarity and merged. The output
// preserves first-seen group order.
func (d *Deduplicator) Run(items []listing.Listing) []listing.Listing {
	groups := make(map[string][]listing.Listing)
	var order []string
	for _, l := range items {
		key := GroupKey(&l)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], l)
	}

	out := make([]listing.Listing, 0, len(items))
	merged := 0
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		clusters := d.cluster(group)
		merged += len(group) - len(clusters)
		out = append(out, clusters...)
	}

	if merged > 0 {
		slog.Info("Deduplicated batch", "input", len(items), "output", len(out), "merged", merged)
	}
	return out
}

// cluster sorts a group by source priority and completeness, then performs
// an anchor scan: each not-yet-processed record becomes an anchor and
// absorbs every remaining record whose title is within the similarity
// threshold of the anchor's title. The comparison is anchor-to-item only,
// not transitive: a chain A~B~C where only B bridges A and C stays split
// when A is the anchor.
func (d *Deduplicator) cluster(group []listing.Listing) []listing.Listing {
	sort.SliceStable(group, func(i, j int) bool {
		pi := listing.SourcePriority[group[i].Source]
		pj := listing.SourcePriority[group[j].Source]
		if pi != pj {
			return pi > pj
		}
		return group[i].CompletenessScore() > group[j].CompletenessScore()
	})

	processed := make([]bool, len(group))
	out := make([]listing.Listing, 0, len(group))

	for i := range group {
		if processed[i] {
			continue
		}
		processed[i] = true
		cluster := []listing.Listing{group[i]}

		for j := i + 1; j < len(group); j++ {
			if processed[j] {
				continue
			}
			if d.similarity(group[i].Title, group[j].Title) >= d.threshold {
				processed[j] = true
				cluster = append(cluster, group[j])
			}
		}

		out = append(out, d.merge(cluster))
	}

	return out
}
