// Package catalog generates the product catalog: weighted categories, a flat
// brand list, log-normal retail pricing and a cost derived under the price.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storesim/internal/dist"
	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/enums"
)

const (
	priceLogMean  = 3.6
	priceLogSigma = 0.6
	priceFloor    = 9.99
	priceCeiling  = 499.99
	costRatioLow  = 0.35
	costRatioHigh = 0.60
)

// categoryWeights sum to 1.0 and match the observed category mix.
var categoryWeights = dist.MustWeighted([]dist.Choice[string]{
	{Value: "Outerwear & Coats", Weight: 0.13},
	{Value: "Jeans", Weight: 0.11},
	{Value: "Tops & Tees", Weight: 0.10},
	{Value: "Swim", Weight: 0.08},
	{Value: "Dresses", Weight: 0.08},
	{Value: "Active", Weight: 0.08},
	{Value: "Suits & Sport Coats", Weight: 0.07},
	{Value: "Intimates", Weight: 0.07},
	{Value: "Accessories", Weight: 0.06},
	{Value: "Shorts", Weight: 0.06},
	{Value: "Pants & Capris", Weight: 0.05},
	{Value: "Skirts", Weight: 0.04},
	{Value: "Maternity", Weight: 0.03},
	{Value: "Sleep & Lounge", Weight: 0.04},
})

var brands = []string{
	"Allegra K", "Calvin Klein", "Carhartt", "Hanes", "Volcom",
	"Diesel", "Dockers", "Quiksilver", "Nautica", "Lucky Brand",
	"G-Star Raw", "Levi's", "Free People", "Vera Wang", "Nike",
}

// womensCategories decides department membership.
var womensCategories = map[string]bool{
	"Dresses":   true,
	"Intimates": true,
	"Maternity": true,
	"Skirts":    true,
	"Swim":      true,
}

// Generator produces the product catalog.
type Generator struct {
	src *dist.Source
}

// NewGenerator builds a catalog generator on the shared random stream.
func NewGenerator(src *dist.Source) (*Generator, error) {
	if src == nil {
		return nil, errors.New("random source required")
	}
	return &Generator{src: src}, nil
}

// Generate produces n products with sequential ids starting at 1.
func (g *Generator) Generate(ctx context.Context, n int) ([]model.Product, error) {
	if n < 1 {
		return nil, fmt.Errorf("product count must be positive, got %d", n)
	}

	products := make([]model.Product, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		category := categoryWeights.Sample(g.src)
		brand := dist.PickOne(g.src, brands)

		base := g.src.LogNormal(priceLogMean, priceLogSigma)
		if base < priceFloor {
			base = priceFloor
		}
		if base > priceCeiling {
			base = priceCeiling
		}
		retail := decimal.NewFromFloat(base).Round(2)
		// cost ratio stays under 1, so cost < retail_price by construction
		cost := retail.Mul(decimal.NewFromFloat(g.src.Uniform(costRatioLow, costRatioHigh))).Round(2)

		products = append(products, model.Product{
			ID:          id,
			Name:        fmt.Sprintf("%s %s #%d", brand, category, id),
			Category:    category,
			Brand:       brand,
			RetailPrice: retail,
			Cost:        cost,
			Department:  departmentFor(category),
		})
	}
	return products, nil
}

func departmentFor(category string) enums.Department {
	if womensCategories[category] {
		return enums.DepartmentWomen
	}
	return enums.DepartmentMen
}
