package main

import (
	"fmt"
	"os"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/adapter/driven/config"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/adapter/driven/export"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/adapter/driven/metrics"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/adapter/driven/snapshot"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/adapter/driving/cli"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/application/usecase"
	"github.com/rpnorth/LichtBlick-Case-Study/pkg/console"
	"github.com/rpnorth/LichtBlick-Case-Study/pkg/logging"
	"github.com/rpnorth/LichtBlick-Case-Study/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	revenueUseCase := usecase.NewRevenueUseCase(
		snapshot.FromArgs,
		export.NewExportRepository(),
		config.NewConfigRepository(),
		metrics.NewMetricsRepository(),
		console.NewConsole(),
		logging.New,
	)
	app.SetRevenueUseCase(revenueUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
