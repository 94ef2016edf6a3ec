package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/listing"
)

// FeedSource turns a job-portal RSS/Atom feed snapshot (fetched by the
// scraping layer) into raw records. Per-item shortcomings are recoverable:
// they are tracked with the diagnostics collector and the item is still
// emitted with whatever fields it has.
type FeedSource struct {
	path   string
	source string
	parser *gofeed.Parser
	diag   *diagnostics.Collector
}

// NewFeedSource reads the feed from path and labels every record with the
// given source identifier (e.g. "aea" or "job_portal").
func NewFeedSource(path, source string, diag *diagnostics.Collector) *FeedSource {
	return &FeedSource{
		path:   path,
		source: source,
		parser: gofeed.NewParser(),
		diag:   diag,
	}
}

func (s *FeedSource) Name() string {
	return filepath.Base(s.path)
}

func (s *FeedSource) Fetch(_ context.Context) ([]listing.Listing, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	defer f.Close()

	feed, err := s.parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", s.path, err)
	}

	today := time.Now().Format("2006-01-02")
	records := make([]listing.Listing, 0, len(feed.Items))
	for _, item := range feed.Items {
		records = append(records, s.convertItem(item, today))
	}
	return records, nil
}

func (s *FeedSource) convertItem(item *gofeed.Item, today string) listing.Listing {
	l := listing.Listing{
		Title:           strings.TrimSpace(item.Title),
		Description:     firstNonEmpty(item.Content, item.Description),
		SourceURL:       item.Link,
		ApplicationLink: item.Link,
		Source:          s.source,
		InstitutionType: listing.InstitutionJobPortal,
		ScrapedDate:     today,
	}

	// Portal feeds usually pack "Institution: Position Title" into the
	// item title.
	if inst, title, ok := strings.Cut(l.Title, ": "); ok {
		l.Institution = strings.TrimSpace(inst)
		l.Title = strings.TrimSpace(title)
	}

	if l.Institution == "" && item.Author != nil {
		l.Institution = strings.TrimSpace(item.Author.Name)
	}
	if l.Institution == "" {
		s.diag.TrackParsing(s.source, "missing_institution",
			fmt.Sprintf("feed item %q has no recognizable institution", item.Title))
	}

	if item.PublishedParsed != nil {
		l.LastUpdated = item.PublishedParsed.Format("2006-01-02")
	}

	// Category tags ride along as pre-existing specializations; the
	// enricher unions them with its own keyword hits.
	for _, c := range item.Categories {
		if c = strings.TrimSpace(c); c != "" {
			l.Specializations = append(l.Specializations, c)
		}
	}

	return l
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
