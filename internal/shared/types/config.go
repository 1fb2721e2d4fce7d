package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	DownloadDate     string   `json:"download_date" yaml:"download_date" toml:"download_date"`
	PeriodStart      string   `json:"period_start" yaml:"period_start" toml:"period_start"`
	SourceDir        string   `json:"source_dir" yaml:"source_dir" toml:"source_dir"`
	S3Bucket         string   `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Prefix         string   `json:"s3_prefix" yaml:"s3_prefix" toml:"s3_prefix"`
	AWSProfile       string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	ReportName       string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType       []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir              string   `json:"dir" yaml:"dir" toml:"dir"`
	Top              int      `json:"top" yaml:"top" toml:"top"`
	MaxUsage         float64  `json:"max_usage" yaml:"max_usage" toml:"max_usage"`
	ExcludeProducts  []string `json:"exclude_products" yaml:"exclude_products" toml:"exclude_products"`
	NegativeOverlaps string   `json:"negative_overlaps" yaml:"negative_overlaps" toml:"negative_overlaps"`
	MetricsFile      string   `json:"metrics_file" yaml:"metrics_file" toml:"metrics_file"`
	LogLevel         string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat        string   `json:"log_format" yaml:"log_format" toml:"log_format"`
}

// ApplyConfig preenche os argumentos ainda não definidos pela CLI com valores do arquivo.
// Flags explícitas sempre vencem.
func ApplyConfig(args *CLIArgs, cfg *Config) {
	if cfg == nil {
		return
	}
	setString := func(flag string, dst *string, value string) {
		if value != "" && !args.IsSet(flag) {
			*dst = value
		}
	}

	setString("download-date", &args.DownloadDate, cfg.DownloadDate)
	setString("period-start", &args.PeriodStart, cfg.PeriodStart)
	setString("source-dir", &args.SourceDir, cfg.SourceDir)
	setString("s3-bucket", &args.S3Bucket, cfg.S3Bucket)
	setString("s3-prefix", &args.S3Prefix, cfg.S3Prefix)
	setString("aws-profile", &args.AWSProfile, cfg.AWSProfile)
	setString("report-name", &args.ReportName, cfg.ReportName)
	setString("dir", &args.Dir, cfg.Dir)
	setString("negative-overlaps", &args.NegativeOverlaps, cfg.NegativeOverlaps)
	setString("metrics-file", &args.MetricsFile, cfg.MetricsFile)
	setString("log-level", &args.LogLevel, cfg.LogLevel)
	setString("log-format", &args.LogFormat, cfg.LogFormat)

	if len(cfg.ReportType) > 0 && !args.IsSet("report-type") {
		args.ReportType = cfg.ReportType
	}
	if len(cfg.ExcludeProducts) > 0 && !args.IsSet("exclude-product") {
		args.ExcludeProducts = cfg.ExcludeProducts
	}
	if cfg.Top > 0 && !args.IsSet("top") {
		args.Top = cfg.Top
	}
	if cfg.MaxUsage > 0 && !args.IsSet("max-usage") {
		args.MaxUsage = cfg.MaxUsage
	}
}
