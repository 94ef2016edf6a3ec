package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/acadjobs/job-comb/app/config"
	"github.com/acadjobs/job-comb/app/dedupe"
	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/enrich"
	"github.com/acadjobs/job-comb/app/ingest"
	"github.com/acadjobs/job-comb/app/listing"
	"github.com/acadjobs/job-comb/app/normalize"
	"github.com/acadjobs/job-comb/app/validate"
)

// Options are the per-run paths and settings.
type Options struct {
	OutputPath     string // canonical jobs.json
	ArchiveDir     string // per-run archive copies, input for new/active detection
	DiagnosticsDir string // diagnostics report bundle
	BaseURL        string // base for resolving relative links
	Version        string
}

// Summary is what a run reports back: stage counts and artifact locations,
// never individual field-level issues (those live in the diagnostics
// bundle).
type Summary struct {
	RunID          string `json:"run_id"`
	Parsed         int    `json:"parsed"`
	Normalized     int    `json:"normalized"`
	Enriched       int    `json:"enriched"`
	Deduplicated   int    `json:"deduplicated"`
	Valid          int    `json:"valid"`
	Invalid        int    `json:"invalid"`
	CriticalErrors int    `json:"critical_errors"`
	Warnings       int    `json:"warnings"`
	Issues         int    `json:"issues"`
	OutputPath     string `json:"output_path"`
	DiagnosticsDir string `json:"diagnostics_dir"`
}

// Pipeline sequences the transform stages over one batch of raw records:
// normalize, enrich, deduplicate against the previous run's archive,
// validate, then write the output artifact and diagnostics bundle. A bad
// record never aborts a run; environment failures (unreadable archive,
// unwritable output) do.
type Pipeline struct {
	diag       *diagnostics.Collector
	normalizer *normalize.Normalizer
	enricher   *enrich.Enricher
	deduper    *dedupe.Deduplicator
	validator  *validate.Validator
}

func New(keywords *config.Config, diag *diagnostics.Collector) *Pipeline {
	return &Pipeline{
		diag:       diag,
		normalizer: normalize.New(keywords, diag),
		enricher:   enrich.New(keywords, diag),
		deduper:    dedupe.New(diag),
		validator:  validate.New(keywords, diag),
	}
}

// Collect gathers raw records from every source. A source that fails
// entirely is recorded and skipped; the run continues with the rest.
func (p *Pipeline) Collect(ctx context.Context, sources []ingest.Source) []listing.Listing {
	var records []listing.Listing
	for _, source := range sources {
		batch, err := source.Fetch(ctx)
		if err != nil {
			p.diag.TrackParsing(source.Name(), "source_failure", err.Error())
			slog.Warn("Source failed, skipping", "source", source.Name(), "error", err)
			continue
		}
		slog.Info("Collected raw records", "source", source.Name(), "records", len(batch))
		records = append(records, batch...)
	}
	return records
}

// Run executes the full transform over one batch of raw records.
func (p *Pipeline) Run(ctx context.Context, records []listing.Listing, opts Options) (*Summary, error) {
	started := time.Now()
	runDate := started.Format("2006-01-02")

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	for i := range records {
		p.normalizer.Run(&records[i], opts.BaseURL)
	}
	for i := range records {
		p.enricher.Run(&records[i], runDate)
	}

	archive, err := dedupe.LoadArchive(opts.ArchiveDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}

	deduped := p.deduper.Run(records)
	p.deduper.MarkNewActive(deduped, archive, started)

	batch := p.validator.RunBatch(deduped)

	if err := WriteOutput(opts.OutputPath, deduped, opts.Version, p.diag.RunID()); err != nil {
		return nil, err
	}
	archivePath, err := WriteArchiveCopy(opts.ArchiveDir, deduped, runDate)
	if err != nil {
		return nil, err
	}
	if err := p.diag.WriteBundle(opts.DiagnosticsDir); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:          p.diag.RunID(),
		Parsed:         len(records),
		Normalized:     len(records),
		Enriched:       len(records),
		Deduplicated:   len(deduped),
		Valid:          batch.Valid,
		Invalid:        batch.Invalid,
		CriticalErrors: batch.CriticalErrors,
		Warnings:       batch.Warnings,
		Issues:         p.diag.Total(),
		OutputPath:     opts.OutputPath,
		DiagnosticsDir: opts.DiagnosticsDir,
	}

	slog.Info("Pipeline run completed",
		"run_id", summary.RunID,
		"duration", time.Since(started).Round(time.Millisecond),
		"parsed", summary.Parsed,
		"normalized", summary.Normalized,
		"enriched", summary.Enriched,
		"deduplicated", summary.Deduplicated,
		"valid", summary.Valid,
		"invalid", summary.Invalid,
		"issues", summary.Issues,
		"output", summary.OutputPath,
		"archive", archivePath,
		"diagnostics", summary.DiagnosticsDir)

	return summary, nil
}
