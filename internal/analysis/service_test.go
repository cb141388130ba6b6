package analysis

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storesim/internal/generator"
	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/config"
	"github.com/angelmondragon/storesim/pkg/logger"
	"github.com/angelmondragon/storesim/pkg/storage/csvstore"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func generateDataset(t *testing.T, dir string) *model.Dataset {
	t.Helper()
	pipeline, err := generator.NewPipeline(generator.Params{
		Seed:         42,
		UserCount:    800,
		ProductCount: 50,
		Start:        time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}, quietLogger())
	require.NoError(t, err)

	dataset, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	store, err := csvstore.NewStore(dir, quietLogger())
	require.NoError(t, err)
	err = store.WriteAll(context.Background(), []csvstore.Table{
		csvstore.BuildTable("products", model.ProductHeader, dataset.Products),
		csvstore.BuildTable("users", model.UserHeader, dataset.Users),
		csvstore.BuildTable("events", model.EventHeader, dataset.Events),
		csvstore.BuildTable("orders", model.OrderHeader, dataset.Orders),
		csvstore.BuildTable("order_items", model.OrderItemHeader, dataset.OrderItems),
	})
	require.NoError(t, err)
	return dataset
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dataset := generateDataset(t, dir)

	tables, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, tables.Products, len(dataset.Products))
	require.Len(t, tables.Users, len(dataset.Users))
	require.Len(t, tables.Events, len(dataset.Events))
	require.Len(t, tables.Orders, len(dataset.Orders))
	require.Len(t, tables.OrderItems, len(dataset.OrderItems))

	// spot check a row survives the trip through the CSV format
	want := dataset.Products[0]
	got := tables.Products[0]
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.RetailPrice.Equal(got.RetailPrice))
	assert.Equal(t, want.Department, got.Department)

	wantUser := dataset.Users[0]
	gotUser := tables.Users[0]
	assert.Equal(t, wantUser.Country, gotUser.Country)
	assert.Equal(t, wantUser.State == nil, gotUser.State == nil)
	assert.True(t, wantUser.CreatedAt.Truncate(time.Second).Equal(gotUser.CreatedAt))
}

func TestLoadRejectsMissingAndMalformedFiles(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err, "empty directory has no tables")

	dir := t.TempDir()
	generateDataset(t, dir)
	// corrupt one header
	path := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("bogus,header\n"), 0o644))

	_, err = Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders")
}

func TestServiceRunProducesReports(t *testing.T) {
	dataDir := t.TempDir()
	reportDir := t.TempDir()
	generateDataset(t, dataDir)

	service, err := NewService(config.AnalysisConfig{
		DataDir:   dataDir,
		ReportDir: reportDir,
		Charts:    false,
	}, quietLogger())
	require.NoError(t, err)

	report, err := service.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Funnel, 5)
	assert.Equal(t, "home", report.Funnel[0].Stage)
	assert.NotEmpty(t, report.BySource)
	assert.NotEmpty(t, report.Trend)
	assert.NotEmpty(t, report.Segments)
	assert.Zero(t, report.Quality.OrphanedEvents)
	assert.Zero(t, report.Quality.DuplicateStagePairs)

	for _, name := range []string{
		"funnel_overall.csv",
		"funnel_by_source.csv",
		"cohort_retention.csv",
		"monthly_trend.csv",
		"customer_segments.csv",
	} {
		_, err := os.Stat(filepath.Join(reportDir, name))
		assert.NoError(t, err, "report %s must be published", name)
	}
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(config.AnalysisConfig{ReportDir: "out"}, quietLogger())
	require.Error(t, err)

	_, err = NewService(config.AnalysisConfig{DataDir: "data"}, quietLogger())
	require.Error(t, err)

	_, err = NewService(config.AnalysisConfig{DataDir: "data", ReportDir: "out"}, nil)
	require.Error(t, err)
}
