// Package population generates the user base: demographics, geography and the
// acquisition channel every downstream conversion rate keys off.
package population

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/storesim/internal/dist"
	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/enums"
)

const (
	ageMean   = 38
	ageStddev = 13
	ageMin    = 18
	ageMax    = 70

	// Users are created at least this long before the dataset end so every
	// user has an observation window.
	signupMargin = 30 * 24 * time.Hour
)

const countryUS = "United States"

// countryWeights uses repetition counts as discrete weights.
var countryWeights = dist.MustWeighted([]dist.Choice[string]{
	{Value: countryUS, Weight: 80},
	{Value: "United Kingdom", Weight: 8},
	{Value: "Germany", Weight: 4},
	{Value: "France", Weight: 3},
	{Value: "Australia", Weight: 3},
	{Value: "Canada", Weight: 2},
})

var usStates = []string{
	"CA", "TX", "NY", "FL", "IL", "PA", "OH", "GA", "NC", "MI",
	"NJ", "VA", "WA", "AZ", "MA", "TN", "IN", "MO", "MD", "WI",
}

var genderWeights = dist.MustWeighted([]dist.Choice[enums.Gender]{
	{Value: enums.GenderMale, Weight: 0.46},
	{Value: enums.GenderFemale, Weight: 0.54},
})

var trafficWeights = dist.MustWeighted([]dist.Choice[enums.TrafficSource]{
	{Value: enums.TrafficSourceOrganic, Weight: 0.30},
	{Value: enums.TrafficSourceSearch, Weight: 0.28},
	{Value: enums.TrafficSourceEmail, Weight: 0.18},
	{Value: enums.TrafficSourceFacebook, Weight: 0.15},
	{Value: enums.TrafficSourceDisplay, Weight: 0.09},
})

// Generator produces the user population.
type Generator struct {
	src   *dist.Source
	start time.Time
	end   time.Time
}

// NewGenerator builds a population generator over the dataset window.
func NewGenerator(src *dist.Source, start, end time.Time) (*Generator, error) {
	if src == nil {
		return nil, errors.New("random source required")
	}
	if !end.After(start) {
		return nil, fmt.Errorf("dataset end %v must be after start %v", end, start)
	}
	return &Generator{src: src, start: start, end: end}, nil
}

// Generate produces n users with sequential ids starting at 1. Attributes are
// drawn one per field, in table column order, so the stream stays aligned
// across implementations of the same schema.
func (g *Generator) Generate(ctx context.Context, n int) ([]model.User, error) {
	if n < 1 {
		return nil, fmt.Errorf("user count must be positive, got %d", n)
	}

	signupEnd := g.end.Add(-signupMargin)
	if !signupEnd.After(g.start) {
		return nil, fmt.Errorf("dataset window shorter than the %s signup margin", signupMargin)
	}

	users := make([]model.User, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		age := int(g.src.ClampedNormal(ageMean, ageStddev, ageMin, ageMax))
		gender := genderWeights.Sample(g.src)
		country := countryWeights.Sample(g.src)

		var state *string
		if country == countryUS {
			picked := dist.PickOne(g.src, usStates)
			state = &picked
		}

		users = append(users, model.User{
			ID:            id,
			Age:           age,
			Gender:        gender,
			Country:       country,
			State:         state,
			TrafficSource: trafficWeights.Sample(g.src),
			CreatedAt:     g.src.TimeBetween(g.start, signupEnd),
		})
	}
	return users, nil
}
