package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/repository"
)

const metricPrefix = "revenue_report_"

// MetricsRepositoryImpl writes run metrics in the Prometheus text format, for a
// node exporter textfile collector to pick up after the batch finishes.
type MetricsRepositoryImpl struct{}

// NewMetricsRepository cria uma nova implementação do MetricsRepository.
func NewMetricsRepository() repository.MetricsRepository {
	return &MetricsRepositoryImpl{}
}

// WriteReportMetrics registra os gauges em um registry próprio e grava o arquivo.
func (r *MetricsRepositoryImpl) WriteReportMetrics(report entity.RevenueReport, path string) error {
	registry, err := buildRegistry(report)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating metrics directory '%s': %w", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("error writing metrics file: %w", err)
	}
	return nil
}

func buildRegistry(report entity.RevenueReport) (*prometheus.Registry, error) {
	labels := prometheus.Labels{"download_date": report.DownloadDate.String()}
	gauge := func(name, help string, value float64) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        metricPrefix + name,
			Help:        help,
			ConstLabels: labels,
		})
		g.Set(value)
		return g
	}

	stats := report.Statistics
	diag := report.Diagnostics
	collectors := []prometheus.Collector{
		gauge("contracts", "Number of customer rows in the revenue output", float64(stats.NumberContracts)),
		gauge("total_revenue_euros", "Total revenue over the reporting period", stats.TotalRevenue),
		gauge("average_revenue_euros", "Average revenue per contract over the reporting period", stats.AvRevenuePerContract),
		gauge("period_days", "Length of the reporting period in days", float64(report.PeriodStart.DaysUntil(report.DownloadDate))),
		gauge("negative_overlaps", "Overlap segments whose clipped window was inverted", float64(diag.NegativeOverlaps)),
		gauge("working_without_base_price", "Working price segments with no base price at or before them", float64(diag.WorkingWithoutBasePrice)),
	}

	removed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:        metricPrefix + "preparation_rows_removed",
		Help:        "Contract rows removed by each preparation filter",
		ConstLabels: labels,
	}, []string{"step"})
	if report.Preparation != nil {
		for _, step := range report.Preparation.Steps {
			removed.WithLabelValues(step.Name).Set(float64(step.Removed()))
		}
		collectors = append(collectors,
			gauge("unpriced_contracts", "Contracts whose product has no price row", float64(report.Preparation.UnpricedContracts)))
	}
	collectors = append(collectors, removed)

	registry := prometheus.NewRegistry()
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("error registering metric: %w", err)
		}
	}
	return registry, nil
}
