package normalize

import (
	"strings"
	"unicode"

	"github.com/acadjobs/job-comb/app/config"
	"github.com/acadjobs/job-comb/app/listing"
)

// usStates maps full state names (lowercase) to postal abbreviations, DC
// included.
var usStates = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "district of columbia": "DC", "florida": "FL",
	"georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY",
	"louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT",
	"nebraska": "NE", "nevada": "NV", "new hampshire": "NH",
	"new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA",
	"rhode island": "RI", "south carolina": "SC", "south dakota": "SD",
	"tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

// usStateAbbrs is the reverse index, built once at process start.
var usStateAbbrs = func() map[string]bool {
	m := make(map[string]bool, len(usStates))
	for _, abbr := range usStates {
		m[abbr] = true
	}
	return m
}()

// usCountrySuffixes are trailing country markers a US location string may
// carry; they are stripped before state matching.
var usCountrySuffixes = []string{
	"usa", "u.s.a.", "us", "u.s.", "united states", "united states of america",
}

// Location parses a free-form location string, routing to the US, China, or
// generic parser. The returned Region is always one of the six region
// buckets; an empty input yields country "Unknown" in other_countries.
func Location(raw string, cfg *config.Config) listing.Location {
	s := strings.TrimSpace(raw)
	if s == "" {
		return listing.Location{Country: "Unknown", Region: listing.RegionOtherCountries}
	}

	if isChinese(s, cfg.Provinces) {
		return parseChina(s, cfg.Provinces)
	}
	if loc, ok := parseUS(s); ok {
		return loc
	}
	return parseGeneric(s, cfg)
}

// parseUS recognizes "City, ST" and "City, State Name" forms, tolerating a
// trailing country marker.
func parseUS(raw string) (listing.Location, bool) {
	segments := splitSegments(raw)
	if len(segments) > 1 {
		last := strings.ToLower(segments[len(segments)-1])
		for _, suffix := range usCountrySuffixes {
			if last == suffix {
				segments = segments[:len(segments)-1]
				break
			}
		}
	}
	if len(segments) < 2 {
		return listing.Location{}, false
	}

	candidate := segments[len(segments)-1]
	var state string
	if len(candidate) == 2 && usStateAbbrs[strings.ToUpper(candidate)] {
		state = strings.ToUpper(candidate)
	} else if abbr, ok := usStates[strings.ToLower(candidate)]; ok {
		state = abbr
	} else {
		return listing.Location{}, false
	}

	return listing.Location{
		City:    strings.Join(segments[:len(segments)-1], ", "),
		State:   state,
		Country: "United States",
		Region:  listing.RegionUnitedStates,
	}, true
}

// parseChina handles full- and half-width separators and the standard
// administrative suffixes (province, municipality, autonomous region).
func parseChina(raw string, provinces []string) listing.Location {
	s := strings.NewReplacer("，", ",", "、", ",").Replace(raw)
	loc := listing.Location{Country: "China", Region: listing.RegionMainlandChina}

	for _, segment := range strings.Split(s, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" || segment == "中国" { // 中国
			continue
		}

		base := trimAdminSuffix(segment)
		if loc.Province == "" && containsProvince(base, provinces) {
			loc.Province = base
			// Municipalities (北京市 etc.) double as the city.
			if strings.HasSuffix(segment, "市") && loc.City == "" {
				loc.City = base
			}
			continue
		}
		if loc.City == "" {
			loc.City = base
		}
	}
	return loc
}

func trimAdminSuffix(s string) string {
	for _, suffix := range []string{"省", "市", "自治区"} { // 省 市 自治区
		s = strings.TrimSuffix(s, suffix)
	}
	return s
}

func containsProvince(s string, provinces []string) bool {
	for _, p := range provinces {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// parseGeneric splits on common separators and treats the last segment as
// the country.
func parseGeneric(raw string, cfg *config.Config) listing.Location {
	segments := splitSegments(raw)

	loc := listing.Location{}
	switch len(segments) {
	case 0:
		loc.Country = "Unknown"
	case 1:
		loc.Country = segments[0]
	case 2:
		loc.City = segments[0]
		loc.Country = segments[1]
	default:
		loc.City = segments[0]
		loc.State = strings.Join(segments[1:len(segments)-1], ", ")
		loc.Country = segments[len(segments)-1]
	}

	loc.Region = cfg.RegionForCountry(loc.Country)
	return loc
}

func isChinese(s string, provinces []string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return containsProvince(s, provinces)
}

func splitSegments(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
