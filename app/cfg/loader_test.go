package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		InputDir:       "./data/raw",
		FeedFile:       "./data/raw/feed.xml",
		FeedSource:     "job_portal",
		BaseURL:        "https://jobs.example.com",
		OutputPath:     "./data/processed/jobs.json",
		ArchiveDir:     "./data/archive",
		DiagnosticsDir: "./data/diagnostics",
		KeywordsFile:   "./config/keywords.yaml",
		Schedule:       "@every 24h",
		Timezone:       "UTC",
		Debug:          true,
		Version:        "test-version",
	}

	if cfg.InputDir != "./data/raw" {
		t.Errorf("Expected input dir './data/raw', got '%s'", cfg.InputDir)
	}
	if cfg.FeedSource != "job_portal" {
		t.Errorf("Expected feed source 'job_portal', got '%s'", cfg.FeedSource)
	}
	if cfg.OutputPath != "./data/processed/jobs.json" {
		t.Errorf("Expected output path './data/processed/jobs.json', got '%s'", cfg.OutputPath)
	}
	if cfg.Schedule != "@every 24h" {
		t.Errorf("Expected schedule '@every 24h', got '%s'", cfg.Schedule)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("Expected UTC to be valid, got %v", err)
	}
	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected an error for an invalid timezone")
	}
}
