package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/application/preparation"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/repository"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/revenue"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/shared/types"
)

// SnapshotResolver escolhe a fonte do snapshot a partir dos argumentos.
type SnapshotResolver func(args *types.CLIArgs) (repository.SnapshotRepository, error)

// LoggerFactory builds the structured logger for a run.
type LoggerFactory func(level, format string) (*zap.Logger, error)

// RevenueUseCase handles the revenue report.
type RevenueUseCase struct {
	snapshots   SnapshotResolver
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	metricsRepo repository.MetricsRepository
	console     types.ConsoleInterface
	newLogger   LoggerFactory
}

// NewRevenueUseCase creates a new revenue use case.
func NewRevenueUseCase(
	snapshots SnapshotResolver,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	metricsRepo repository.MetricsRepository,
	console types.ConsoleInterface,
	newLogger LoggerFactory,
) *RevenueUseCase {
	if newLogger == nil {
		newLogger = func(string, string) (*zap.Logger, error) { return zap.NewNop(), nil }
	}
	return &RevenueUseCase{
		snapshots:   snapshots,
		exportRepo:  exportRepo,
		configRepo:  configRepo,
		metricsRepo: metricsRepo,
		console:     console,
		newLogger:   newLogger,
	}
}

// runParameters are the resolved inputs of one run.
type runParameters struct {
	period      revenue.Period
	policy      revenue.NegativeOverlapPolicy
	prepOptions preparation.Options
}

// resolveParameters valida datas, política e filtros a partir dos argumentos da CLI.
// Sem --period-start, o período começa em 1º de janeiro do ano do download.
func (uc *RevenueUseCase) resolveParameters(args *types.CLIArgs) (runParameters, error) {
	var params runParameters

	if strings.TrimSpace(args.DownloadDate) == "" {
		return params, types.ErrMissingDownloadDate
	}
	downloadDate, err := entity.ParseDate(args.DownloadDate)
	if err != nil {
		return params, fmt.Errorf("invalid --download-date: %w", err)
	}

	periodStart := entity.NewDate(downloadDate.Year(), 1, 1)
	if args.PeriodStart != "" {
		periodStart, err = entity.ParseDate(args.PeriodStart)
		if err != nil {
			return params, fmt.Errorf("invalid --period-start: %w", err)
		}
	}

	params.period, err = revenue.NewPeriod(periodStart, downloadDate)
	if err != nil {
		return params, err
	}

	params.policy, err = revenue.ParseNegativeOverlapPolicy(args.NegativeOverlaps)
	if err != nil {
		return params, err
	}

	params.prepOptions = preparation.DefaultOptions()
	if args.MaxUsage > 0 {
		params.prepOptions.MaxUsage = args.MaxUsage
	}
	if len(args.ExcludeProducts) > 0 {
		params.prepOptions.ExcludedProductIDs = args.ExcludeProducts
	}
	return params, nil
}

// buildReport loads, prepares and computes the report without printing it.
// When the output is empty the partial report is returned with revenue.ErrNoContracts.
func (uc *RevenueUseCase) buildReport(
	ctx context.Context,
	source repository.SnapshotRepository,
	downloadDateName string,
	params runParameters,
	logger *zap.Logger,
) (entity.RevenueReport, error) {
	report := entity.RevenueReport{
		PeriodStart:  params.period.Start,
		DownloadDate: params.period.DownloadDate,
	}

	files, err := source.Files(ctx, downloadDateName)
	if err != nil {
		return report, fmt.Errorf("error loading snapshot from %s: %w", source.Describe(), err)
	}

	tables, prep, err := preparation.NewPreparer(logger, params.prepOptions).Prepare(files, params.period.DownloadDate)
	if err != nil {
		return report, err
	}
	report.Preparation = prep

	engine := revenue.NewEngine(revenue.WithNegativeOverlapPolicy(params.policy))
	result := engine.Run(tables, params.period)
	report.Rows = result.Rows
	report.Diagnostics = result.Diagnostics
	report.ByProduct = revenue.ProductBreakdown(result.Rows)

	if result.Diagnostics.NegativeOverlaps > 0 {
		logger.Warn("overlap segments with date_to before date_from",
			zap.Int("segments", result.Diagnostics.NegativeOverlaps),
			zap.String("policy", string(params.policy)))
	}
	logger.Debug("engine finished",
		zap.Int("joined_records", result.Diagnostics.JoinedRecords),
		zap.Int("discarded_pairs", result.Diagnostics.DiscardedPairs),
		zap.Int("working_segments", result.Diagnostics.WorkingSegments),
		zap.Int("base_segments", result.Diagnostics.BaseSegments),
		zap.Int("unknown_components", result.Diagnostics.UnknownComponents))

	report.Statistics, err = revenue.ComputeStatistics(result.Rows)
	return report, err
}

// RunReport executa a funcionalidade principal do relatório.
func (uc *RevenueUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return err
		}
		types.ApplyConfig(args, cfg)
	}

	params, err := uc.resolveParameters(args)
	if err != nil {
		return err
	}

	logger, err := uc.newLogger(args.LogLevel, args.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source, err := uc.snapshots(args)
	if err != nil {
		return err
	}

	status := uc.console.Status(fmt.Sprintf("Loading snapshot %s from %s...", args.DownloadDate, source.Describe()))
	report, err := uc.buildReport(ctx, source, args.DownloadDate, params, logger)
	status.Stop()

	if report.Preparation != nil {
		uc.displayPreparation(report.Preparation)
	}
	if errors.Is(err, revenue.ErrNoContracts) {
		uc.console.LogWarning("No active contracts with prices in %s", params.period)
		return err
	}
	if err != nil {
		return err
	}

	uc.displayReport(report, args.Top)
	uc.exportReport(report, args)

	if args.MetricsFile != "" {
		if err := uc.metricsRepo.WriteReportMetrics(report, args.MetricsFile); err != nil {
			uc.console.LogError("Failed to write metrics file: %s", err)
		} else {
			uc.console.LogSuccess("Metrics written to %s", args.MetricsFile)
		}
	}
	return nil
}

// exportReport exporta o relatório em cada formato pedido. Falhas são reportadas e não abortam.
func (uc *RevenueUseCase) exportReport(report entity.RevenueReport, args *types.CLIArgs) {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}

	for _, reportType := range args.ReportType {
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		case "xlsx":
			xlsxPath, err := uc.exportRepo.ExportToXLSX(report, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to XLSX: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to XLSX: %s", xlsxPath)
			}
		default:
			uc.console.LogWarning("Unknown report type '%s' skipped", reportType)
		}
	}
}
