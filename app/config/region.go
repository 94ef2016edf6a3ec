package config

import (
	"strings"

	"github.com/acadjobs/job-comb/app/listing"
)

// RegionForCountry maps a country string to one of the six region buckets
// using the configured country table: exact match first, then substring
// containment for longer aliases (short aliases like "us" would otherwise
// false-match inside words such as "Austria" or "Russia"). Anything
// unrecognized lands in other_countries.
func (c *Config) RegionForCountry(country string) string {
	s := strings.ToLower(strings.TrimSpace(country))
	if s == "" {
		return listing.RegionOtherCountries
	}

	for _, cr := range c.CountryRegions {
		if s == cr.Country {
			return cr.Region
		}
	}
	for _, cr := range c.CountryRegions {
		if len(cr.Country) >= 4 && strings.Contains(s, cr.Country) {
			return cr.Region
		}
	}
	return listing.RegionOtherCountries
}
