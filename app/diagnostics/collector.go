package diagnostics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Category identifies the pipeline stage that produced an issue.
type Category string

const (
	CategoryURL           Category = "url"
	CategoryScraping      Category = "scraping"
	CategoryParsing       Category = "parsing"
	CategoryExtraction    Category = "extraction"
	CategoryNormalization Category = "normalization"
	CategoryEnrichment    Category = "enrichment"
	CategoryValidation    Category = "validation"
)

// Categories lists every issue category in report order.
var Categories = []Category{
	CategoryURL,
	CategoryScraping,
	CategoryParsing,
	CategoryExtraction,
	CategoryNormalization,
	CategoryEnrichment,
	CategoryValidation,
}

// Issue is one recorded recoverable failure. Issues are append-only within a
// run; nothing ever removes them.
type Issue struct {
	Source         string    `json:"source"`
	Field          string    `json:"field,omitempty"`
	Error          string    `json:"error"`
	ErrorType      string    `json:"error_type,omitempty"`
	ValidationType string    `json:"validation_type,omitempty"`
	Original       string    `json:"original,omitempty"`
	Normalized     string    `json:"normalized,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Collector is the run-scoped issue log shared by reference across all
// pipeline stages. Appends are serialized with a mutex so concurrent stages
// can report without losing entries.
type Collector struct {
	mu        sync.Mutex
	runID     string
	startedAt time.Time
	issues    map[Category][]Issue
}

// NewCollector creates an empty collector with a fresh run ID.
func NewCollector() *Collector {
	return &Collector{
		runID:     uuid.NewString(),
		startedAt: time.Now(),
		issues:    make(map[Category][]Issue, len(Categories)),
	}
}

// RunID returns the identifier stamped into every report of this run.
func (c *Collector) RunID() string {
	return c.runID
}

// Track appends an issue to the given category, stamping the timestamp if
// the caller left it zero.
func (c *Collector) Track(cat Category, issue Issue) {
	if issue.Timestamp.IsZero() {
		issue.Timestamp = time.Now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.issues[cat] = append(c.issues[cat], issue)
}

// TrackNormalization records a field-level normalization failure.
func (c *Collector) TrackNormalization(source, field, original, errMsg string) {
	c.Track(CategoryNormalization, Issue{
		Source:   source,
		Field:    field,
		Original: original,
		Error:    errMsg,
	})
}

// TrackEnrichment records a field-level enrichment failure.
func (c *Collector) TrackEnrichment(source, field, errMsg string) {
	c.Track(CategoryEnrichment, Issue{
		Source: source,
		Field:  field,
		Error:  errMsg,
	})
}

// TrackValidation records a validation finding.
func (c *Collector) TrackValidation(source, validationType, errMsg string) {
	c.Track(CategoryValidation, Issue{
		Source:         source,
		ValidationType: validationType,
		Error:          errMsg,
	})
}

// TrackParsing records a raw-record parsing failure.
func (c *Collector) TrackParsing(source, errorType, errMsg string) {
	c.Track(CategoryParsing, Issue{
		Source:    source,
		ErrorType: errorType,
		Error:     errMsg,
	})
}

// Count returns the number of issues in one category.
func (c *Collector) Count(cat Category) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issues[cat])
}

// Total returns the number of issues across all categories.
func (c *Collector) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, issues := range c.issues {
		total += len(issues)
	}
	return total
}

// Stats returns the per-category issue counts.
func (c *Collector) Stats() map[Category]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		stats[cat] = len(c.issues[cat])
	}
	return stats
}

// Issues returns a copy of the ordered issue sequence for one category.
func (c *Collector) Issues(cat Category) []Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Issue, len(c.issues[cat]))
	copy(out, c.issues[cat])
	return out
}

// ErrorFrequency pairs a collapsed error key with its occurrence count.
type ErrorFrequency struct {
	Error string `json:"error"`
	Count int    `json:"count"`
}

// RootCause aggregates issues across categories to point at the likeliest
// origins of data-quality problems.
type RootCause struct {
	BySource         map[string]int   `json:"by_source"`
	ByErrorType      map[string]int   `json:"by_error_type"`
	ByValidationType map[string]int   `json:"by_validation_type"`
	TopErrors        []ErrorFrequency `json:"top_errors"`
}

// Analyze computes the root-cause report over every issue recorded so far.
func (c *Collector) Analyze() RootCause {
	c.mu.Lock()
	defer c.mu.Unlock()

	rc := RootCause{
		BySource:         make(map[string]int),
		ByErrorType:      make(map[string]int),
		ByValidationType: make(map[string]int),
	}
	freq := make(map[string]int)

	for _, cat := range Categories {
		for _, issue := range c.issues[cat] {
			if issue.Source != "" {
				rc.BySource[issue.Source]++
			}
			if issue.ErrorType != "" {
				rc.ByErrorType[issue.ErrorType]++
			}
			if issue.ValidationType != "" {
				rc.ByValidationType[issue.ValidationType]++
			}
			freq[errorKey(issue.Error)]++
		}
	}

	rc.TopErrors = topErrors(freq, 10)
	return rc
}

// errorKey collapses an error message to the text before its first colon,
// falling back to the first 50 characters, so variants of the same failure
// group together.
func errorKey(msg string) string {
	if i := strings.Index(msg, ":"); i > 0 {
		return msg[:i]
	}
	if len(msg) > 50 {
		return msg[:50]
	}
	return msg
}

func topErrors(freq map[string]int, limit int) []ErrorFrequency {
	out := make([]ErrorFrequency, 0, len(freq))
	for k, v := range freq {
		out = append(out, ErrorFrequency{Error: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Error < out[j].Error
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CategoryReport summarizes one category: how many issues, which sources
// were affected, and the error-type breakdown.
type CategoryReport struct {
	Category   Category       `json:"category"`
	Count      int            `json:"count"`
	Sources    []string       `json:"sources"`
	ErrorTypes map[string]int `json:"error_types"`
}

// Report builds the summary for one category.
func (c *Collector) Report(cat Category) CategoryReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	report := CategoryReport{
		Category:   cat,
		Count:      len(c.issues[cat]),
		ErrorTypes: make(map[string]int),
	}

	seen := make(map[string]struct{})
	for _, issue := range c.issues[cat] {
		if issue.Source != "" {
			if _, ok := seen[issue.Source]; !ok {
				seen[issue.Source] = struct{}{}
				report.Sources = append(report.Sources, issue.Source)
			}
		}
		errType := issue.ErrorType
		if errType == "" {
			errType = issue.ValidationType
		}
		if errType == "" {
			errType = "unclassified"
		}
		report.ErrorTypes[errType]++
	}
	sort.Strings(report.Sources)
	return report
}

// Summary renders a human-readable run summary.
func (c *Collector) Summary() string {
	stats := c.Stats()
	rc := c.Analyze()

	var b strings.Builder
	fmt.Fprintf(&b, "Diagnostics summary for run %s\n", c.runID)
	fmt.Fprintf(&b, "Started: %s\n\n", c.startedAt.Format(time.RFC3339))

	b.WriteString("Issues by category:\n")
	total := 0
	for _, cat := range Categories {
		fmt.Fprintf(&b, "  %-14s %d\n", cat, stats[cat])
		total += stats[cat]
	}
	fmt.Fprintf(&b, "  %-14s %d\n\n", "total", total)

	if len(rc.TopErrors) > 0 {
		b.WriteString("Most frequent errors:\n")
		for _, e := range rc.TopErrors {
			fmt.Fprintf(&b, "  %4d  %s\n", e.Count, e.Error)
		}
		b.WriteString("\n")
	}

	if len(rc.BySource) > 0 {
		b.WriteString("Issues by source:\n")
		sources := make([]string, 0, len(rc.BySource))
		for s := range rc.BySource {
			sources = append(sources, s)
		}
		sort.Strings(sources)
		for _, s := range sources {
			fmt.Fprintf(&b, "  %4d  %s\n", rc.BySource[s], s)
		}
	}

	return b.String()
}
