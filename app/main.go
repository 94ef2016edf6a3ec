package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/acadjobs/job-comb/app/cfg"
	"github.com/acadjobs/job-comb/app/config"
	"github.com/acadjobs/job-comb/app/diagnostics"
	"github.com/acadjobs/job-comb/app/ingest"
	"github.com/acadjobs/job-comb/app/pipeline"
	"github.com/acadjobs/job-comb/app/scheduler"
)

func main() {
	// .env is optional; flags and real environment variables win.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting job-comb", "version", appCfg.Version)

	keywords, err := config.Load(appCfg.KeywordsFile)
	if err != nil {
		slog.Error("Failed to load keyword configuration", "error", err)
		os.Exit(1)
	}

	run := func(ctx context.Context) error {
		return runPipeline(ctx, appCfg, keywords)
	}

	if appCfg.Schedule == "" {
		if err := run(context.Background()); err != nil {
			slog.Error("Pipeline run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Daemon mode: re-run on the cron schedule until interrupted.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(appCfg.Schedule, run)
	if err := sched.Start(ctx); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("Received signal, shutting down", "signal", sig.String())

	cancel()
	sched.Stop()
}

// runPipeline performs one full batch run: collect raw records from every
// configured source, transform them, and persist the artifacts.
func runPipeline(ctx context.Context, appCfg *cfg.Cfg, keywords *config.Config) error {
	diag := diagnostics.NewCollector()
	p := pipeline.New(keywords, diag)

	sources, err := buildSources(appCfg, diag)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		slog.Warn("No input sources found", "input_dir", appCfg.InputDir)
	}

	records := p.Collect(ctx, sources)

	summary, err := p.Run(ctx, records, pipeline.Options{
		OutputPath:     appCfg.OutputPath,
		ArchiveDir:     appCfg.ArchiveDir,
		DiagnosticsDir: appCfg.DiagnosticsDir,
		BaseURL:        appCfg.BaseURL,
		Version:        appCfg.Version,
	})
	if err != nil {
		return err
	}

	slog.Info("Run summary",
		"run_id", summary.RunID,
		"listings", summary.Deduplicated,
		"valid", summary.Valid,
		"invalid", summary.Invalid,
		"diagnostics", summary.DiagnosticsDir)
	return nil
}

func buildSources(appCfg *cfg.Cfg, diag *diagnostics.Collector) ([]ingest.Source, error) {
	var sources []ingest.Source

	files, err := filepath.Glob(filepath.Join(appCfg.InputDir, "*.json"))
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		sources = append(sources, ingest.NewFileSource(file))
	}

	if appCfg.FeedFile != "" {
		sources = append(sources, ingest.NewFeedSource(appCfg.FeedFile, appCfg.FeedSource, diag))
	}

	return sources, nil
}
