package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is applied by envconfig to every variable lookup.
const EnvPrefix = "storesim"

// Environment variable names, spelled out for tests and docs.
const (
	EnvLogLevel     = "STORESIM_LOG_LEVEL"
	EnvSeed         = "STORESIM_SEED"
	EnvUserCount    = "STORESIM_USER_COUNT"
	EnvProductCount = "STORESIM_PRODUCT_COUNT"
	EnvStartDate    = "STORESIM_START_DATE"
	EnvEndDate      = "STORESIM_END_DATE"
	EnvDataDir      = "STORESIM_DATA_DIR"
	EnvAnalysisData = "STORESIM_ANALYSIS_DATA_DIR"
	EnvReportDir    = "STORESIM_REPORT_DIR"
)

// DateLayout is the calendar-day format accepted for the simulation window.
const DateLayout = "2006-01-02"

type Config struct {
	App       AppConfig
	Generator GeneratorConfig
	Analysis  AnalysisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if _, _, err := cfg.Generator.Window(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	LogLevel     string `envconfig:"STORESIM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STORESIM_LOG_WARN_STACK" default:"false"`
}

// GeneratorConfig is the full set of knobs the generator recognizes: the
// seed, the target row counts, and the simulation date range.
type GeneratorConfig struct {
	Seed         int64  `envconfig:"STORESIM_SEED" default:"42"`
	UserCount    int    `envconfig:"STORESIM_USER_COUNT" default:"50000" validate:"gte=1"`
	ProductCount int    `envconfig:"STORESIM_PRODUCT_COUNT" default:"500" validate:"gte=1"`
	StartDate    string `envconfig:"STORESIM_START_DATE" default:"2023-01-01"`
	EndDate      string `envconfig:"STORESIM_END_DATE" default:"2024-12-31"`
	DataDir      string `envconfig:"STORESIM_DATA_DIR" default:"data" validate:"required"`
}

// Window parses the configured date range and rejects empty or inverted ranges.
func (g GeneratorConfig) Window() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, g.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing start date: %w", err)
	}
	end, err := time.Parse(DateLayout, g.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing end date: %w", err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s must be after start date %s", g.EndDate, g.StartDate)
	}
	return start, end, nil
}

type AnalysisConfig struct {
	DataDir   string `envconfig:"STORESIM_ANALYSIS_DATA_DIR" default:"data" validate:"required"`
	ReportDir string `envconfig:"STORESIM_REPORT_DIR" default:"outputs" validate:"required"`
	Charts    bool   `envconfig:"STORESIM_CHARTS" default:"true"`
}
