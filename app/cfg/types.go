package cfg

type Cfg struct {
	// Feed definition and output locations
	ConfigPath string
	OutputDir  string
	FeedFile   string
	DBPath     string

	// Provider configuration
	YtDlpPath    string
	YtDlpTimeout int

	// Run behavior
	Timezone     string
	CutoffTime   string
	CutoffHour   int
	CutoffMinute int

	// Application metadata
	Debug   bool
	Version string
}
