package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
)

func fixedRepo() *ExportRepositoryImpl {
	return &ExportRepositoryImpl{now: func() time.Time {
		return time.Date(2023, 7, 2, 8, 30, 0, 0, time.UTC)
	}}
}

func sampleReport() entity.RevenueReport {
	d := entity.MustParseDate
	return entity.RevenueReport{
		PeriodStart:  d("2023-01-01"),
		DownloadDate: d("2023-07-01"),
		Rows: []entity.RevenueRow{
			{CustomerID: "1", DownloadDate: d("2023-07-01"), Product: "Strom Basis", CreationDate: d("2022-12-15"), Revenue: 199.1, Consumption: 1810},
			{CustomerID: "2", DownloadDate: d("2023-07-01"), Product: "Öko Strom", CreationDate: d("2023-01-20"), Revenue: 50.004, Consumption: 402.55555},
		},
		Statistics: entity.RevenueStatistics{NumberContracts: 2, TotalRevenue: 249.104, AvRevenuePerContract: 124.552},
		ByProduct: []entity.ProductRevenue{
			{Product: "Strom Basis", Customers: 1, Revenue: 199.1, Consumption: 1810},
			{Product: "Öko Strom", Customers: 1, Revenue: 50.004, Consumption: 402.55555},
		},
		Diagnostics: entity.EngineDiagnostics{NegativeOverlaps: 1},
		Preparation: &entity.PreparationReport{Steps: []entity.FilterStep{{Name: "usage outliers", Before: 3, After: 2}}},
	}
}

func TestExportToCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := fixedRepo().ExportToCSV(sampleReport(), "revenue", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "revenue_20230702_083000.csv"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		revenueHeaders,
		{"1", "2023-07-01", "Strom Basis", "2022-12-15", "199.10", "1810.000"},
		{"2", "2023-07-01", "Öko Strom", "2023-01-20", "50.00", "402.556"},
	}, records)
}

func TestExportToJSON(t *testing.T) {
	path, err := fixedRepo().ExportToJSON(sampleReport(), "revenue", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded struct {
		PeriodStart string `json:"period_start_date"`
		Rows        []struct {
			CustomerID   string  `json:"customer_id"`
			CreationDate string  `json:"creation_date"`
			Revenue      float64 `json:"revenue"`
		} `json:"rows"`
		Statistics entity.RevenueStatistics `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2023-01-01", decoded.PeriodStart)
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "2022-12-15", decoded.Rows[0].CreationDate)
	assert.Equal(t, 199.1, decoded.Rows[0].Revenue)
	assert.Equal(t, 2, decoded.Statistics.NumberContracts)
}

func TestExportToPDF(t *testing.T) {
	path, err := fixedRepo().ExportToPDF(sampleReport(), "revenue", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestExportToXLSX(t *testing.T) {
	path, err := fixedRepo().ExportToXLSX(sampleReport(), "revenue", t.TempDir())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"summary", "customers", "products", "preparation"}, f.GetSheetList())

	rows, err := f.GetRows("customers")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, revenueHeaders, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "199.1", rows[1][4])

	step, err := f.GetCellValue("preparation", "A2")
	require.NoError(t, err)
	assert.Equal(t, "usage outliers", step)
}

func TestGenerateFilename_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	name, err := fixedRepo().generateFilename("report", dir, "csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_20230702_083000.csv"), name)
	assert.DirExists(t, dir)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Ökost...", truncate("Ökostrom Premium", 8))
}
