package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Columns of the revenue table, in output order.
var revenueHeaders = []string{"customer_id", "download_date", "product", "creation_date", "revenue", "consumption"}

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// --- Funções de Exportação do Relatório de Receita ---

func (r *ExportRepositoryImpl) ExportToCSV(report entity.RevenueReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(revenueHeaders); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range report.Rows {
		if err := writer.Write(revenueRecord(row)); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report entity.RevenueReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(report entity.RevenueReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	data, err := r.buildPDF(report)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outputFilename, data, 0o644); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) buildPDF(report entity.RevenueReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, title)
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by revenue-report | %s", r.now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, "  Revenue Report", "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Period: %s to %s", report.PeriodStart, report.DownloadDate)), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	drawSectionTitle("Summary")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	for _, line := range summaryLines(report) {
		pdf.CellFormat(70, 6, tr(line[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(line[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if len(report.ByProduct) > 0 {
		drawSectionTitle("Revenue By Product")
		widths := []float64{90, 30, 35, 35}
		pdf.SetFont("Arial", "B", 9)
		for i, h := range []string{"Product", "Customers", "Revenue (EUR)", "Consumption (kWh)"} {
			pdf.CellFormat(widths[i], 6, h, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, p := range report.ByProduct {
			pdf.CellFormat(widths[0], 6, tr(truncate(p.Product, 50)), "", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", p.Customers), "", 0, "R", false, 0, "")
			pdf.CellFormat(widths[2], 6, formatMoney(p.Revenue), "", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], 6, formatConsumption(p.Consumption), "", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	drawSectionTitle("Customers")
	widths := []float64{25, 25, 60, 25, 27, 28}
	drawHeader := func() {
		pdf.SetFont("Arial", "B", 8)
		for i, h := range revenueHeaders {
			pdf.CellFormat(widths[i], 6, h, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	drawHeader()
	for _, row := range report.Rows {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			drawHeader()
		}
		record := revenueRecord(row)
		record[2] = truncate(record[2], 35)
		for i, cell := range record {
			align := "L"
			if i >= 4 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 5, tr(cell), "", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *ExportRepositoryImpl) ExportToXLSX(report entity.RevenueReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	customersSheet := "customers"
	productsSheet := "products"
	preparationSheet := "preparation"
	f.SetSheetName("Sheet1", summarySheet)
	for _, sheet := range []string{customersSheet, productsSheet, preparationSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("error creating sheet %s: %w", sheet, err)
		}
	}

	_ = f.SetCellValue(summarySheet, "A1", "Revenue Report")
	for i, line := range summaryLines(report) {
		row := i + 3
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), line[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), line[1])
	}

	for i, h := range revenueHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(customersSheet, cell, h)
	}
	for i, row := range report.Rows {
		n := i + 2
		_ = f.SetCellValue(customersSheet, fmt.Sprintf("A%d", n), row.CustomerID)
		_ = f.SetCellValue(customersSheet, fmt.Sprintf("B%d", n), row.DownloadDate.String())
		_ = f.SetCellValue(customersSheet, fmt.Sprintf("C%d", n), row.Product)
		_ = f.SetCellValue(customersSheet, fmt.Sprintf("D%d", n), row.CreationDate.String())
		_ = f.SetCellValue(customersSheet, fmt.Sprintf("E%d", n), roundFloat(row.Revenue, 2))
		_ = f.SetCellValue(customersSheet, fmt.Sprintf("F%d", n), roundFloat(row.Consumption, 3))
	}

	_ = f.SetCellValue(productsSheet, "A1", "product")
	_ = f.SetCellValue(productsSheet, "B1", "customers")
	_ = f.SetCellValue(productsSheet, "C1", "revenue")
	_ = f.SetCellValue(productsSheet, "D1", "consumption")
	for i, p := range report.ByProduct {
		n := i + 2
		_ = f.SetCellValue(productsSheet, fmt.Sprintf("A%d", n), p.Product)
		_ = f.SetCellValue(productsSheet, fmt.Sprintf("B%d", n), p.Customers)
		_ = f.SetCellValue(productsSheet, fmt.Sprintf("C%d", n), roundFloat(p.Revenue, 2))
		_ = f.SetCellValue(productsSheet, fmt.Sprintf("D%d", n), roundFloat(p.Consumption, 3))
	}

	_ = f.SetCellValue(preparationSheet, "A1", "step")
	_ = f.SetCellValue(preparationSheet, "B1", "before")
	_ = f.SetCellValue(preparationSheet, "C1", "after")
	if report.Preparation != nil {
		for i, step := range report.Preparation.Steps {
			n := i + 2
			_ = f.SetCellValue(preparationSheet, fmt.Sprintf("A%d", n), step.Name)
			_ = f.SetCellValue(preparationSheet, fmt.Sprintf("B%d", n), step.Before)
			_ = f.SetCellValue(preparationSheet, fmt.Sprintf("C%d", n), step.After)
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func revenueRecord(row entity.RevenueRow) []string {
	return []string{
		row.CustomerID,
		row.DownloadDate.String(),
		row.Product,
		row.CreationDate.String(),
		formatMoney(row.Revenue),
		formatConsumption(row.Consumption),
	}
}

// summaryLines são os pares rótulo/valor exibidos no topo de PDF e XLSX.
func summaryLines(report entity.RevenueReport) [][2]string {
	lines := [][2]string{
		{"Period start", report.PeriodStart.String()},
		{"Download date", report.DownloadDate.String()},
		{"Number of contracts", fmt.Sprintf("%d", report.Statistics.NumberContracts)},
		{"Total revenue (EUR)", formatMoney(report.Statistics.TotalRevenue)},
		{"Average revenue per contract (EUR)", formatMoney(report.Statistics.AvRevenuePerContract)},
	}
	if report.Diagnostics.NegativeOverlaps > 0 {
		policy := "dropped"
		if report.Diagnostics.NegativeOverlapsKept {
			policy = "kept"
		}
		lines = append(lines, [2]string{"Negative overlaps", fmt.Sprintf("%d (%s)", report.Diagnostics.NegativeOverlaps, policy)})
	}
	return lines
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func formatConsumption(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(3)
}

func roundFloat(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
