package cfg

type Cfg struct {
	// Input configuration
	InputDir   string
	FeedFile   string
	FeedSource string
	BaseURL    string

	// Output configuration
	OutputPath     string
	ArchiveDir     string
	DiagnosticsDir string

	// Application configuration
	KeywordsFile string
	Schedule     string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
