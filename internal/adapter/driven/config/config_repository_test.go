package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/shared/types"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{
			name: "toml",
			file: "report.toml",
			body: `download_date = "2023-07-01"
period_start = "2023-01-01"
source_dir = "./src_data"
report_type = ["csv", "xlsx"]
exclude_products = ["2000", "2001"]
max_usage = 50000000.0
top = 5
`,
		},
		{
			name: "yaml",
			file: "report.yaml",
			body: `download_date: "2023-07-01"
period_start: "2023-01-01"
source_dir: ./src_data
report_type: [csv, xlsx]
exclude_products: ["2000", "2001"]
max_usage: 50000000
top: 5
`,
		},
		{
			name: "json",
			file: "report.json",
			body: `{"download_date":"2023-07-01","period_start":"2023-01-01","source_dir":"./src_data",
"report_type":["csv","xlsx"],"exclude_products":["2000","2001"],"max_usage":50000000,"top":5}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfigRepository().LoadConfigFile(writeFile(t, tt.file, tt.body))
			require.NoError(t, err)
			assert.Equal(t, &types.Config{
				DownloadDate:    "2023-07-01",
				PeriodStart:     "2023-01-01",
				SourceDir:       "./src_data",
				ReportType:      []string{"csv", "xlsx"},
				ExcludeProducts: []string{"2000", "2001"},
				MaxUsage:        5e7,
				Top:             5,
			}, cfg)
		})
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "error accessing config file")

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, "report.ini", "a=b"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(writeFile(t, "report.json", `{"top": -1}`))
	assert.ErrorContains(t, err, "invalid top")

	_, err = repo.LoadConfigFile(writeFile(t, "report.yaml", "report_type: [csv, html]\n"))
	assert.ErrorContains(t, err, `invalid report_type "html"`)

	_, err = repo.LoadConfigFile(writeFile(t, "report.toml", "log_format = \"xml\"\n"))
	assert.ErrorContains(t, err, "invalid log_format")

	_, err = repo.LoadConfigFile(writeFile(t, "report.toml", "top = ["))
	assert.ErrorContains(t, err, "error parsing TOML file")
}

func TestLoadConfigFile_NormalisesReportTypes(t *testing.T) {
	cfg, err := NewConfigRepository().LoadConfigFile(writeFile(t, "report.json", `{"report_type": [" CSV", "Xlsx"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"csv", "xlsx"}, cfg.ReportType)
}

func TestApplyConfig_FlagsWin(t *testing.T) {
	args := &types.CLIArgs{
		DownloadDate: "2023-08-01",
		ReportType:   []string{"pdf"},
		Changed:      map[string]bool{"download-date": true},
	}
	types.ApplyConfig(args, &types.Config{
		DownloadDate: "2023-07-01",
		PeriodStart:  "2023-01-01",
		ReportType:   []string{"csv"},
		Top:          3,
	})

	assert.Equal(t, "2023-08-01", args.DownloadDate)
	assert.Equal(t, "2023-01-01", args.PeriodStart)
	assert.Equal(t, []string{"csv"}, args.ReportType)
	assert.Equal(t, 3, args.Top)
}
