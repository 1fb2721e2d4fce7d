package repository

import (
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report entity.RevenueReport, filename string, outputDir string) (string, error)
	ExportToJSON(report entity.RevenueReport, filename string, outputDir string) (string, error)
	ExportToPDF(report entity.RevenueReport, filename string, outputDir string) (string, error)
	ExportToXLSX(report entity.RevenueReport, filename string, outputDir string) (string, error)
}
