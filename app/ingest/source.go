package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acadjobs/job-comb/app/listing"
)

// Source supplies raw records to the pipeline. Implementations sit at the
// boundary to the scraping layer: any subset of a record's fields may be
// populated.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]listing.Listing, error)
}

// FileSource reads raw records from a JSON file produced by the scraping
// layer, either a bare array of records or a {"listings": [...]} envelope.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return filepath.Base(s.path)
}

func (s *FileSource) Fetch(_ context.Context) ([]listing.Listing, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw records file: %w", err)
	}

	var envelope struct {
		Listings []listing.Listing `json:"listings"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Listings != nil {
		return envelope.Listings, nil
	}

	var records []listing.Listing
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse raw records file %s: %w", s.path, err)
	}
	return records, nil
}
