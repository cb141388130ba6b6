package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storesim/pkg/config"
	"github.com/angelmondragon/storesim/pkg/logger"
	"github.com/angelmondragon/storesim/pkg/storage/csvstore"
)

// Service loads a dataset, computes the report set and writes the exports.
type Service struct {
	dataDir   string
	reportDir string
	charts    bool
	logg      *logger.Logger
}

// NewService builds an analysis service from config.
func NewService(cfg config.AnalysisConfig, logg *logger.Logger) (*Service, error) {
	if cfg.DataDir == "" {
		return nil, errors.New("data directory required")
	}
	if cfg.ReportDir == "" {
		return nil, errors.New("report directory required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &Service{
		dataDir:   cfg.DataDir,
		reportDir: cfg.ReportDir,
		charts:    cfg.Charts,
		logg:      logg,
	}, nil
}

// Run executes the full analysis pass and returns the computed report.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	tables, err := Load(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	s.logg.Info(ctx, fmt.Sprintf("loaded %d users, %d events, %d orders, %d items, %d products",
		len(tables.Users), len(tables.Events), len(tables.Orders), len(tables.OrderItems), len(tables.Products)))

	report := Analyze(tables)

	s.logQuality(ctx, report.Quality)

	if err := s.export(ctx, report); err != nil {
		return nil, err
	}
	if s.charts {
		if err := RenderCharts(s.reportDir, report); err != nil {
			return nil, fmt.Errorf("rendering charts: %w", err)
		}
		s.logg.Info(ctx, "charts rendered")
	}
	return report, nil
}

// Analyze computes every report over already-loaded tables.
func Analyze(tables *Tables) *Report {
	return &Report{
		Quality:  ComputeQuality(tables),
		Funnel:   ComputeFunnel(tables.Events),
		BySource: ComputeFunnelBySource(tables.Events),
		Cohorts:  ComputeCohorts(tables.Orders),
		Trend:    ComputeTrend(tables.Events, tables.Orders),
		Segments: ComputeSegments(tables.Orders),
	}
}

func (s *Service) export(ctx context.Context, report *Report) error {
	store, err := csvstore.NewStore(s.reportDir, s.logg)
	if err != nil {
		return err
	}
	tables := []csvstore.Table{
		csvstore.BuildTable("funnel_overall", FunnelHeader, report.Funnel),
		csvstore.BuildTable("funnel_by_source", SourceFunnelHeader, report.BySource),
		csvstore.BuildTable("cohort_retention", CohortHeader, report.Cohorts),
		csvstore.BuildTable("monthly_trend", TrendHeader, report.Trend),
		csvstore.BuildTable("customer_segments", SegmentHeader, report.Segments),
	}
	if err := store.WriteAll(ctx, tables); err != nil {
		return fmt.Errorf("exporting reports: %w", err)
	}
	return nil
}

func (s *Service) logQuality(ctx context.Context, quality QualityReport) {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"null_states":           quality.NullStates,
		"duplicate_stage_pairs": quality.DuplicateStagePairs,
		"orphaned_events":       quality.OrphanedEvents,
		"revenue_outliers":      quality.RevenueOutliers,
		"avg_order_value":       fmt.Sprintf("%.2f", quality.AvgOrderValue),
	})
	s.logg.Info(ctx, "data quality summary")
}
