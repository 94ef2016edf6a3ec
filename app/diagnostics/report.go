package diagnostics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FullReport is the complete diagnostics artifact persisted at run end.
type FullReport struct {
	RunID       string               `json:"run_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Statistics  map[Category]int     `json:"statistics"`
	RootCause   RootCause            `json:"root_cause"`
	Issues      map[Category][]Issue `json:"issues"`
}

// SummaryReport is the compact variant of FullReport without raw issues.
type SummaryReport struct {
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Statistics  map[Category]int `json:"statistics"`
	TopErrors   []ErrorFrequency `json:"top_errors"`
}

// Full assembles the complete report from the collector's current state.
func (c *Collector) Full() FullReport {
	report := FullReport{
		RunID:       c.runID,
		GeneratedAt: time.Now(),
		Statistics:  c.Stats(),
		RootCause:   c.Analyze(),
		Issues:      make(map[Category][]Issue, len(Categories)),
	}
	for _, cat := range Categories {
		report.Issues[cat] = c.Issues(cat)
	}
	return report
}

// WriteBundle persists the full report bundle under dir: a timestamped full
// JSON report, summary JSON, one JSON file per category, a text summary,
// and "latest" copies of each so consumers have stable paths.
func (c *Collector) WriteBundle(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create diagnostics directory: %w", err)
	}

	ts := time.Now().Format("20060102_150405")
	full := c.Full()

	summary := SummaryReport{
		RunID:       full.RunID,
		GeneratedAt: full.GeneratedAt,
		Statistics:  full.Statistics,
		TopErrors:   full.RootCause.TopErrors,
	}

	if err := writeJSON(dir, fmt.Sprintf("diagnostics_report_%s.json", ts), "latest_report.json", full); err != nil {
		return err
	}
	if err := writeJSON(dir, fmt.Sprintf("diagnostics_summary_%s.json", ts), "latest_summary.json", summary); err != nil {
		return err
	}

	for _, cat := range Categories {
		name := fmt.Sprintf("%s_issues_%s.json", cat, ts)
		latest := fmt.Sprintf("latest_%s_issues.json", cat)
		payload := struct {
			Report CategoryReport `json:"report"`
			Issues []Issue        `json:"issues"`
		}{
			Report: c.Report(cat),
			Issues: full.Issues[cat],
		}
		if err := writeJSON(dir, name, latest, payload); err != nil {
			return err
		}
	}

	text := []byte(c.Summary())
	textName := filepath.Join(dir, fmt.Sprintf("diagnostics_summary_%s.txt", ts))
	if err := os.WriteFile(textName, text, 0o644); err != nil {
		return fmt.Errorf("failed to write diagnostics text summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "latest_summary.txt"), text, 0o644); err != nil {
		return fmt.Errorf("failed to write latest diagnostics text summary: %w", err)
	}

	return nil
}

func writeJSON(dir, name, latestName string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, latestName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", latestName, err)
	}
	return nil
}
