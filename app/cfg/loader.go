package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Input configuration
	InputDir   string `long:"input-dir" env:"INPUT_DIR" default:"./data/raw" description:"Directory containing raw scraped record files (*.json)"`
	FeedFile   string `long:"feed-file" env:"FEED_FILE" description:"Job-portal RSS/Atom feed snapshot to ingest (optional)"`
	FeedSource string `long:"feed-source" env:"FEED_SOURCE" default:"job_portal" description:"Source label for records ingested from the feed file"`
	BaseURL    string `long:"base-url" env:"BASE_URL" description:"Base URL for resolving relative links in raw records"`

	// Output configuration
	OutputPath     string `long:"output" env:"OUTPUT_PATH" default:"./data/processed/jobs.json" description:"Path of the canonical output file"`
	ArchiveDir     string `long:"archive-dir" env:"ARCHIVE_DIR" default:"./data/archive" description:"Directory holding per-run archive copies"`
	DiagnosticsDir string `long:"diagnostics-dir" env:"DIAGNOSTICS_DIR" default:"./data/diagnostics" description:"Directory for the diagnostics report bundle"`

	// Application configuration
	KeywordsFile string `long:"keywords" env:"KEYWORDS_FILE" default:"./config/keywords.yaml" description:"Keyword-table configuration file (compiled-in defaults when absent)"`
	Schedule     string `long:"schedule" env:"SCHEDULE" description:"Cron spec for daemon mode (e.g. '@every 24h'); empty runs once and exits"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		InputDir:       raw.InputDir,
		FeedFile:       raw.FeedFile,
		FeedSource:     raw.FeedSource,
		BaseURL:        raw.BaseURL,
		OutputPath:     raw.OutputPath,
		ArchiveDir:     raw.ArchiveDir,
		DiagnosticsDir: raw.DiagnosticsDir,
		KeywordsFile:   raw.KeywordsFile,
		Schedule:       raw.Schedule,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
