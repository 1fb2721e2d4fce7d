package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
)

func TestWriteReportMetrics(t *testing.T) {
	report := entity.RevenueReport{
		PeriodStart:  entity.MustParseDate("2023-01-01"),
		DownloadDate: entity.MustParseDate("2023-07-01"),
		Statistics:   entity.RevenueStatistics{NumberContracts: 2, TotalRevenue: 300, AvRevenuePerContract: 150},
		Preparation: &entity.PreparationReport{
			Steps:             []entity.FilterStep{{Name: "usage outliers", Before: 10, After: 7}},
			UnpricedContracts: 1,
		},
	}

	path := filepath.Join(t.TempDir(), "textfile", "revenue.prom")
	require.NoError(t, NewMetricsRepository().WriteReportMetrics(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `revenue_report_contracts{download_date="2023-07-01"} 2`)
	assert.Contains(t, text, `revenue_report_total_revenue_euros{download_date="2023-07-01"} 300`)
	assert.Contains(t, text, `revenue_report_period_days{download_date="2023-07-01"} 181`)
	assert.Contains(t, text, `revenue_report_preparation_rows_removed{download_date="2023-07-01",step="usage outliers"} 3`)
	assert.Contains(t, text, `revenue_report_unpriced_contracts{download_date="2023-07-01"} 1`)
}
