// Package generator runs the four dataset components in dependency order:
// catalog, population, session simulation, order materialization. The whole
// run shares one seeded random stream, so a (seed, counts, window) triple
// fully determines every table.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/storesim/internal/catalog"
	"github.com/angelmondragon/storesim/internal/dist"
	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/internal/orders"
	"github.com/angelmondragon/storesim/internal/population"
	"github.com/angelmondragon/storesim/internal/session"
	"github.com/angelmondragon/storesim/pkg/logger"
)

// Params are the externally meaningful knobs of a generation run.
type Params struct {
	Seed         int64
	UserCount    int
	ProductCount int
	Start        time.Time
	End          time.Time
}

// Pipeline generates one dataset per Run call.
type Pipeline struct {
	params Params
	logg   *logger.Logger
}

// NewPipeline validates the parameters and builds a pipeline.
func NewPipeline(params Params, logg *logger.Logger) (*Pipeline, error) {
	if params.UserCount < 1 {
		return nil, fmt.Errorf("user count must be positive, got %d", params.UserCount)
	}
	if params.ProductCount < 1 {
		return nil, fmt.Errorf("product count must be positive, got %d", params.ProductCount)
	}
	if !params.End.After(params.Start) {
		return nil, errors.New("dataset end must be after start")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &Pipeline{params: params, logg: logg}, nil
}

// Run executes the pipeline and returns the full in-memory dataset.
func (p *Pipeline) Run(ctx context.Context) (*model.Dataset, error) {
	src := dist.NewSource(p.params.Seed)

	catalogGen, err := catalog.NewGenerator(src)
	if err != nil {
		return nil, err
	}
	products, err := catalogGen.Generate(ctx, p.params.ProductCount)
	if err != nil {
		return nil, fmt.Errorf("generating catalog: %w", err)
	}
	p.logg.Info(p.logg.WithComponent(ctx, "catalog"), fmt.Sprintf("generated %d products", len(products)))

	populationGen, err := population.NewGenerator(src, p.params.Start, p.params.End)
	if err != nil {
		return nil, err
	}
	users, err := populationGen.Generate(ctx, p.params.UserCount)
	if err != nil {
		return nil, fmt.Errorf("generating population: %w", err)
	}
	p.logg.Info(p.logg.WithComponent(ctx, "population"), fmt.Sprintf("generated %d users", len(users)))

	simulator, err := session.NewSimulator(src, products, p.params.End)
	if err != nil {
		return nil, err
	}
	sessions, events, err := simulator.Simulate(ctx, users)
	if err != nil {
		return nil, fmt.Errorf("simulating sessions: %w", err)
	}
	p.logg.Info(p.logg.WithComponent(ctx, "session-simulator"),
		fmt.Sprintf("simulated %d sessions with %d events", len(sessions), len(events)))

	materializer, err := orders.NewMaterializer(src, products)
	if err != nil {
		return nil, err
	}
	orderRows, itemRows, err := materializer.Materialize(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("materializing orders: %w", err)
	}
	p.logg.Info(p.logg.WithComponent(ctx, "order-materializer"),
		fmt.Sprintf("materialized %d orders with %d items", len(orderRows), len(itemRows)))

	return &model.Dataset{
		Products:   products,
		Users:      users,
		Sessions:   sessions,
		Events:     events,
		Orders:     orderRows,
		OrderItems: itemRows,
	}, nil
}
