package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/angelmondragon/storesim/internal/analysis"
	"github.com/angelmondragon/storesim/pkg/config"
	"github.com/angelmondragon/storesim/pkg/logger"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "analyze"})

	_ = godotenv.Load()

	data := flag.String("data", "", "dataset directory (overrides "+config.EnvAnalysisData+")")
	out := flag.String("out", "", "report directory (overrides "+config.EnvReportDir+")")
	noCharts := flag.Bool("no-charts", false, "skip PNG chart rendering")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Analysis.DataDir = *data
		case "out":
			cfg.Analysis.ReportDir = *out
		case "no-charts":
			cfg.Analysis.Charts = !*noCharts
		}
	})

	logg = logger.New(logger.Options{
		ServiceName: "analyze",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithRunID(context.Background(), uuid.NewString())
	ctx = logg.WithFields(ctx, map[string]any{
		"data": cfg.Analysis.DataDir,
		"out":  cfg.Analysis.ReportDir,
	})

	service, err := analysis.NewService(cfg.Analysis, logg)
	requireResource(ctx, logg, "analysis service", err)

	logg.Info(ctx, "analyze ready")

	report, err := service.Run(ctx)
	if err != nil {
		logg.Error(ctx, "analysis failed", err)
		os.Exit(1)
	}

	logFindings(ctx, logg, report)
}

// logFindings surfaces the headline numbers the report exists for.
func logFindings(ctx context.Context, logg *logger.Logger, report *analysis.Report) {
	fields := map[string]any{}
	if n := len(report.Funnel); n > 0 {
		fields["overall_conversion_pct"] = fmt.Sprintf("%.2f", report.Funnel[n-1].ConversionFromTopPct)
	}
	if len(report.BySource) > 0 {
		fields["best_source"] = report.BySource[0].Source
		fields["worst_source"] = report.BySource[len(report.BySource)-1].Source
	}
	fields["cohorts"] = len(report.Cohorts)
	fields["months"] = len(report.Trend)
	logg.Info(logg.WithFields(ctx, fields), "analysis complete")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
