package config

// Config holds the keyword tables driving classification and location
// parsing. It is loaded once at startup and treated as read-only afterwards;
// classification functions receive it by reference.
type Config struct {
	JobTypes        []KeywordSet    `yaml:"job_types"`
	Specializations []KeywordSet    `yaml:"specializations"`
	Departments     []KeywordSet    `yaml:"departments"`
	Provinces       []string        `yaml:"provinces"`
	CountryRegions  []CountryRegion `yaml:"country_regions"`
}

// KeywordSet maps one classification target to the keywords that vote for
// it. Sets are ordered: when classification scores tie, the first-defined
// set wins.
type KeywordSet struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CountryRegion maps a country name (or common alias) to one of the six
// region buckets.
type CountryRegion struct {
	Country string `yaml:"country"`
	Region  string `yaml:"region"`
}
