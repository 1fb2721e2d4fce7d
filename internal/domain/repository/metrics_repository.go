package repository

import (
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
)

// MetricsRepository publishes the figures of a finished run.
type MetricsRepository interface {
	WriteReportMetrics(report entity.RevenueReport, path string) error
}
