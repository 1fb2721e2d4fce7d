package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/application/usecase"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/shared/types"
	"github.com/rpnorth/LichtBlick-Case-Study/pkg/version"
)

// flagNames são as flags rastreadas em CLIArgs.Changed.
var flagNames = []string{
	"config-file", "download-date", "period-start", "source-dir", "s3-bucket", "s3-prefix",
	"aws-profile", "report-name", "report-type", "dir", "top", "max-usage", "exclude-product",
	"negative-overlaps", "metrics-file", "log-level", "log-format",
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd        *cobra.Command
	revenueUseCase *usecase.RevenueUseCase
	version        string
	quiet          bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "revenue-report",
		Short:         "Revenue and consumption report for one contracts snapshot",
		Version:       version.FormatVersion(),
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Revenue Report version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("download-date", "D", "", "Snapshot date to report on, YYYY-MM-DD (required)")
	flags.StringP("period-start", "s", "", "First day of the reporting period (default: January 1st of the download year)")
	flags.StringP("source-dir", "i", "", "Directory holding the snapshot CSV files")
	flags.String("s3-bucket", "", "S3 bucket holding the snapshot CSV files (takes precedence over --source-dir)")
	flags.String("s3-prefix", "", "Key prefix inside the S3 bucket")
	flags.String("aws-profile", "", "AWS shared config profile used for S3")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf, xlsx")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.IntP("top", "t", 10, "Number of customers shown in the console table")
	flags.Float64("max-usage", 0, "Drop contracts whose yearly usage is at or above this bound (default: 1e8)")
	flags.StringSlice("exclude-product", nil, "Product ids removed before the join (default: 2000)")
	flags.String("negative-overlaps", "drop", "What to do with segments whose price validity ends before they start: drop or keep")
	flags.String("metrics-file", "", "Write report gauges to this Prometheus textfile")
	flags.String("log-level", "", "Structured log level: debug, info, warn, error (default: warn)")
	flags.String("log-format", "", "Structured log encoding: console or json")
	flags.BoolVarP(&app.quiet, "quiet", "q", false, "Do not print the welcome banner")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs overrides os.Args, used in tests.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	downloadDate, _ := flags.GetString("download-date")
	periodStart, _ := flags.GetString("period-start")
	sourceDir, _ := flags.GetString("source-dir")
	s3Bucket, _ := flags.GetString("s3-bucket")
	s3Prefix, _ := flags.GetString("s3-prefix")
	awsProfile, _ := flags.GetString("aws-profile")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	top, _ := flags.GetInt("top")
	maxUsage, _ := flags.GetFloat64("max-usage")
	excludeProducts, _ := flags.GetStringSlice("exclude-product")
	negativeOverlaps, _ := flags.GetString("negative-overlaps")
	metricsFile, _ := flags.GetString("metrics-file")
	logLevel, _ := flags.GetString("log-level")
	logFormat, _ := flags.GetString("log-format")

	// Empty dir means the current directory, resolved by the exporter
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	changed := make(map[string]bool, len(flagNames))
	for _, name := range flagNames {
		if flags.Changed(name) {
			changed[name] = true
		}
	}

	args := &types.CLIArgs{
		ConfigFile:       configFile,
		DownloadDate:     downloadDate,
		PeriodStart:      periodStart,
		SourceDir:        sourceDir,
		S3Bucket:         s3Bucket,
		S3Prefix:         s3Prefix,
		AWSProfile:       awsProfile,
		ReportName:       reportName,
		ReportType:       reportType,
		Dir:              dir,
		Top:              top,
		MaxUsage:         maxUsage,
		ExcludeProducts:  excludeProducts,
		NegativeOverlaps: negativeOverlaps,
		MetricsFile:      metricsFile,
		LogLevel:         logLevel,
		LogFormat:        logFormat,
		Changed:          changed,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	if !app.quiet {
		displayWelcomeBanner()
		go version.CheckLatestVersion(app.version)
	}

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.revenueUseCase.RunReport(ctx, cliArgs)
}

// SetRevenueUseCase sets the revenue use case for the CLI app.
func (app *CLIApp) SetRevenueUseCase(useCase *usecase.RevenueUseCase) {
	app.revenueUseCase = useCase
}
