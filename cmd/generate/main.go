package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/angelmondragon/storesim/internal/generator"
	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/config"
	"github.com/angelmondragon/storesim/pkg/logger"
	"github.com/angelmondragon/storesim/pkg/storage/csvstore"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "generate"})

	_ = godotenv.Load()

	// Flags override the env-sourced config for one-off runs.
	seed := flag.Int64("seed", 0, "random seed (overrides "+config.EnvSeed+")")
	users := flag.Int("users", 0, "user count (overrides "+config.EnvUserCount+")")
	products := flag.Int("products", 0, "product count (overrides "+config.EnvProductCount+")")
	out := flag.String("out", "", "output directory (overrides "+config.EnvDataDir+")")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Generator.Seed = *seed
		case "users":
			cfg.Generator.UserCount = *users
		case "products":
			cfg.Generator.ProductCount = *products
		case "out":
			cfg.Generator.DataDir = *out
		}
	})

	logg = logger.New(logger.Options{
		ServiceName: "generate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithRunID(context.Background(), uuid.NewString())
	ctx = logg.WithFields(ctx, map[string]any{
		"seed":     cfg.Generator.Seed,
		"users":    cfg.Generator.UserCount,
		"products": cfg.Generator.ProductCount,
		"out":      cfg.Generator.DataDir,
	})

	start, end, err := cfg.Generator.Window()
	requireResource(ctx, logg, "date window", err)

	pipeline, err := generator.NewPipeline(generator.Params{
		Seed:         cfg.Generator.Seed,
		UserCount:    cfg.Generator.UserCount,
		ProductCount: cfg.Generator.ProductCount,
		Start:        start,
		End:          end,
	}, logg)
	requireResource(ctx, logg, "pipeline", err)

	logg.Info(ctx, "generate ready")

	dataset, err := pipeline.Run(ctx)
	if err != nil {
		logg.Error(ctx, "generation failed", err)
		os.Exit(1)
	}

	store, err := csvstore.NewStore(cfg.Generator.DataDir, logg)
	requireResource(ctx, logg, "csv store", err)

	tables := []csvstore.Table{
		csvstore.BuildTable("products", model.ProductHeader, dataset.Products),
		csvstore.BuildTable("users", model.UserHeader, dataset.Users),
		csvstore.BuildTable("events", model.EventHeader, dataset.Events),
		csvstore.BuildTable("orders", model.OrderHeader, dataset.Orders),
		csvstore.BuildTable("order_items", model.OrderItemHeader, dataset.OrderItems),
	}
	if err := store.WriteAll(ctx, tables); err != nil {
		logg.Error(ctx, "writing tables failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "generation complete")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
