package usecase

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/shared/types"
)

const defaultTop = 10

func euros(v float64) string {
	return "€" + decimal.NewFromFloat(v).StringFixed(2)
}

func kwh(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + " kWh"
}

// summaryLines monta o painel de resumo do relatório.
func summaryLines(report entity.RevenueReport) [][2]string {
	lines := [][2]string{
		{"Reporting period", fmt.Sprintf("%s to %s (%d days)", report.PeriodStart, report.DownloadDate, report.PeriodStart.DaysUntil(report.DownloadDate))},
		{"Number of contracts", fmt.Sprintf("%d", report.Statistics.NumberContracts)},
		{"Total revenue", euros(report.Statistics.TotalRevenue)},
		{"Average revenue per contract", euros(report.Statistics.AvRevenuePerContract)},
	}
	diag := report.Diagnostics
	if diag.WorkingWithoutBasePrice > 0 {
		lines = append(lines, [2]string{"Segments without base price", fmt.Sprintf("%d", diag.WorkingWithoutBasePrice)})
	}
	if diag.NegativeOverlaps > 0 {
		policy := "dropped"
		if diag.NegativeOverlapsKept {
			policy = "kept"
		}
		lines = append(lines, [2]string{"Negative overlaps", fmt.Sprintf("%d (%s)", diag.NegativeOverlaps, policy)})
	}
	return lines
}

// topRows returns the n rows with the highest revenue, ties in output order.
func topRows(rows []entity.RevenueRow, n int) []entity.RevenueRow {
	if n <= 0 {
		n = defaultTop
	}
	sorted := make([]entity.RevenueRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Revenue > sorted[j].Revenue
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (uc *RevenueUseCase) displayReport(report entity.RevenueReport, top int) {
	uc.console.DisplaySummary("Revenue Summary", summaryLines(report))

	table := uc.console.CreateTable()
	table.AddColumn("Customer")
	table.AddColumn("Product")
	table.AddColumn("Created")
	table.AddColumn("Consumption")
	table.AddColumn("Revenue")
	for _, row := range topRows(report.Rows, top) {
		table.AddRow(
			pterm.FgMagenta.Sprint(row.CustomerID),
			row.Product,
			row.CreationDate.String(),
			kwh(row.Consumption),
			pterm.FgGreen.Sprint(euros(row.Revenue)),
		)
	}
	uc.console.Println()
	uc.console.Print(table.Render())

	shares := make([]types.ProductShare, len(report.ByProduct))
	for i, p := range report.ByProduct {
		shares[i] = types.ProductShare{Product: p.Product, Revenue: p.Revenue}
	}
	uc.console.DisplayProductBars(shares)
}

func (uc *RevenueUseCase) displayPreparation(prep *entity.PreparationReport) {
	table := uc.console.CreateTable()
	table.AddColumn("Filter")
	table.AddColumn("Before")
	table.AddColumn("After")
	table.AddColumn("Removed")
	for _, step := range prep.Steps {
		removed := fmt.Sprintf("%d", step.Removed())
		if step.Removed() > 0 {
			removed = pterm.FgYellow.Sprint(removed)
		}
		table.AddRow(step.Name, step.Before, step.After, removed)
	}
	uc.console.Print(table.Render())

	if prep.UnpricedContracts > 0 {
		uc.console.LogWarning("%d contracts have no price for their product and are left out", prep.UnpricedContracts)
	}
	if prep.InvalidPrices > 0 {
		uc.console.LogWarning("%d price rows without value or valid_from were dropped", prep.InvalidPrices)
	}
}
