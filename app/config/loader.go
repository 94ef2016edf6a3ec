package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/acadjobs/job-comb/app/listing"
)

// Load reads the keyword configuration from path. An empty path, or a path
// that does not exist, yields the compiled-in defaults. A file that exists
// but cannot be parsed or fails validation is a fatal error: a corrupt
// configuration aborts the run rather than silently degrading every record.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("Keyword configuration not found, using defaults", "path", path)
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword configuration: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse keyword configuration: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid keyword configuration %s: %w", path, err)
	}

	slog.Info("Loaded keyword configuration", "path", path,
		"job_types", len(cfg.JobTypes),
		"specializations", len(cfg.Specializations))
	return &cfg, nil
}

// setDefaults fills any table the file omitted from the compiled-in set.
func setDefaults(cfg *Config) {
	def := Default()
	if len(cfg.JobTypes) == 0 {
		cfg.JobTypes = def.JobTypes
	}
	if len(cfg.Specializations) == 0 {
		cfg.Specializations = def.Specializations
	}
	if len(cfg.Departments) == 0 {
		cfg.Departments = def.Departments
	}
	if len(cfg.Provinces) == 0 {
		cfg.Provinces = def.Provinces
	}
	if len(cfg.CountryRegions) == 0 {
		cfg.CountryRegions = def.CountryRegions
	}
}

// validate checks structural soundness of the tables.
func validate(cfg *Config) error {
	for i, set := range cfg.JobTypes {
		if set.Name == "" {
			return fmt.Errorf("job_types[%d]: name is required", i)
		}
		if len(set.Keywords) == 0 {
			return fmt.Errorf("job_types[%d] (%s): at least one keyword is required", i, set.Name)
		}
	}
	for i, set := range cfg.Specializations {
		if set.Name == "" {
			return fmt.Errorf("specializations[%d]: name is required", i)
		}
		if len(set.Keywords) == 0 {
			return fmt.Errorf("specializations[%d] (%s): at least one keyword is required", i, set.Name)
		}
	}

	validRegions := make(map[string]bool, len(listing.Regions))
	for _, r := range listing.Regions {
		validRegions[r] = true
	}
	for i, cr := range cfg.CountryRegions {
		if cr.Country == "" {
			return fmt.Errorf("country_regions[%d]: country is required", i)
		}
		if !validRegions[cr.Region] {
			return fmt.Errorf("country_regions[%d] (%s): invalid region %q", i, cr.Country, cr.Region)
		}
	}
	return nil
}
