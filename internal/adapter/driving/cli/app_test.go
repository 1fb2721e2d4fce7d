package cli

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parsedArgs runs the root command with a RunE that only parses flags.
func parsedArgs(t *testing.T, argv ...string) *cobra.Command {
	t.Helper()
	app := NewCLIApp("test")
	app.rootCmd.RunE = func(*cobra.Command, []string) error { return nil }
	app.SetArgs(argv)
	require.NoError(t, app.Execute())
	return app.rootCmd
}

func TestParseArgs(t *testing.T) {
	cmd := parsedArgs(t,
		"-D", "2023-07-01",
		"--period-start", "2023-03-01",
		"-i", "data",
		"-y", "csv,xlsx",
		"--exclude-product", "2000,3000",
		"--negative-overlaps", "keep",
		"--max-usage", "5e6",
		"-d", "out",
	)
	app := &CLIApp{}
	args, err := app.parseArgs(cmd)
	require.NoError(t, err)

	assert.Equal(t, "2023-07-01", args.DownloadDate)
	assert.Equal(t, "2023-03-01", args.PeriodStart)
	assert.Equal(t, "data", args.SourceDir)
	assert.Equal(t, []string{"csv", "xlsx"}, args.ReportType)
	assert.Equal(t, []string{"2000", "3000"}, args.ExcludeProducts)
	assert.Equal(t, "keep", args.NegativeOverlaps)
	assert.Equal(t, 5e6, args.MaxUsage)
	assert.Equal(t, 10, args.Top)
	assert.True(t, filepath.IsAbs(args.Dir))

	assert.True(t, args.IsSet("download-date"))
	assert.True(t, args.IsSet("max-usage"))
	assert.False(t, args.IsSet("top"))
	assert.False(t, args.IsSet("metrics-file"))
}

func TestParseArgs_Defaults(t *testing.T) {
	cmd := parsedArgs(t, "-D", "2023-07-01")
	args, err := (&CLIApp{}).parseArgs(cmd)
	require.NoError(t, err)

	assert.Equal(t, []string{"csv"}, args.ReportType)
	assert.Equal(t, "drop", args.NegativeOverlaps)
	assert.Empty(t, args.Dir)
	assert.Empty(t, args.ExcludeProducts)
	assert.False(t, args.IsSet("report-type"))
}
