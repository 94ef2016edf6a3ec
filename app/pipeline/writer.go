package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/acadjobs/job-comb/app/listing"
)

// Output is the canonical artifact consumed by the static-site generator.
type Output struct {
	Metadata Metadata          `json:"metadata"`
	Listings []listing.Listing `json:"listings"`
}

// Metadata describes one output generation.
type Metadata struct {
	GeneratedAt   time.Time `json:"generated_at"`
	TotalListings int       `json:"total_listings"`
	Version       string    `json:"version"`
	RunID         string    `json:"run_id"`
}

// WriteOutput writes the canonical {metadata, listings} envelope to path.
func WriteOutput(path string, listings []listing.Listing, version, runID string) error {
	out := Output{
		Metadata: Metadata{
			GeneratedAt:   time.Now(),
			TotalListings: len(listings),
			Version:       version,
			RunID:         runID,
		},
		Listings: listings,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// WriteArchiveCopy writes the per-run archive copy that the next run's
// new/active detection reads. The date prefix keeps filename sort order
// chronological.
func WriteArchiveCopy(dir string, listings []listing.Listing, runDate string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_jobs.json", runDate))
	payload := struct {
		Listings []listing.Listing `json:"listings"`
	}{Listings: listings}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal archive copy: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive copy: %w", err)
	}
	return path, nil
}
