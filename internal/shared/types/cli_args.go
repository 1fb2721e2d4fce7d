package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile       string
	DownloadDate     string
	PeriodStart      string
	SourceDir        string
	S3Bucket         string
	S3Prefix         string
	AWSProfile       string
	ReportName       string
	ReportType       []string
	Dir              string
	Top              int
	MaxUsage         float64
	ExcludeProducts  []string
	NegativeOverlaps string
	MetricsFile      string
	LogLevel         string
	LogFormat        string

	// Changed guarda quais flags foram passadas explicitamente na linha de comando.
	Changed map[string]bool
}

// IsSet reports whether the flag was given on the command line.
func (a *CLIArgs) IsSet(flag string) bool {
	return a.Changed != nil && a.Changed[flag]
}
