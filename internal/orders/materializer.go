// Package orders turns purchase events into order headers and line items.
// Processing is a deterministic map over the purchase stream: given the same
// random stream position, the same purchases always produce the same orders.
package orders

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storesim/internal/dist"
	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/enums"
)

const (
	saleDiscountLow  = 0.85
	saleDiscountHigh = 1.0

	shipDelayMinDays = 1
	shipDelayMaxDays = 4

	returnDelayMinDays = 3
	returnDelayMaxDays = 14
)

var statusWeights = dist.MustWeighted([]dist.Choice[enums.OrderStatus]{
	{Value: enums.OrderStatusComplete, Weight: 0.57},
	{Value: enums.OrderStatusReturned, Weight: 0.22},
	{Value: enums.OrderStatusCancelled, Weight: 0.05},
	{Value: enums.OrderStatusShipped, Weight: 0.10},
	{Value: enums.OrderStatusProcessing, Weight: 0.06},
})

var itemCountWeights = dist.MustWeighted([]dist.Choice[int]{
	{Value: 1, Weight: 0.55},
	{Value: 2, Weight: 0.28},
	{Value: 3, Weight: 0.12},
	{Value: 4, Weight: 0.05},
})

// Materializer converts purchase-terminal events into orders.
type Materializer struct {
	src      *dist.Source
	products []model.Product
}

// NewMaterializer builds a materializer over a non-empty catalog.
func NewMaterializer(src *dist.Source, products []model.Product) (*Materializer, error) {
	if src == nil {
		return nil, errors.New("random source required")
	}
	if len(products) == 0 {
		return nil, errors.New("product catalog required")
	}
	return &Materializer{src: src, products: products}, nil
}

// Materialize creates one order per purchase event, processed in timestamp
// order. Items sample products independently with replacement, so an order's
// items need not include the product viewed in the triggering session.
func (m *Materializer) Materialize(ctx context.Context, events []model.Event) ([]model.Order, []model.OrderItem, error) {
	purchases := make([]model.Event, 0)
	for _, ev := range events {
		if ev.Type == enums.EventTypePurchase {
			purchases = append(purchases, ev)
		}
	}
	sort.SliceStable(purchases, func(i, j int) bool {
		if purchases[i].CreatedAt.Equal(purchases[j].CreatedAt) {
			return purchases[i].ID < purchases[j].ID
		}
		return purchases[i].CreatedAt.Before(purchases[j].CreatedAt)
	})

	orders := make([]model.Order, 0, len(purchases))
	var items []model.OrderItem
	orderID := int64(1)
	itemID := int64(1)

	for _, purchase := range purchases {
		status := statusWeights.Sample(m.src)
		itemCount := itemCountWeights.Sample(m.src)

		total := decimal.Zero
		for i := 0; i < itemCount; i++ {
			product := dist.PickOne(m.src, m.products)
			salePrice := product.RetailPrice.
				Mul(decimal.NewFromFloat(m.src.Uniform(saleDiscountLow, saleDiscountHigh))).
				Round(2)
			total = total.Add(salePrice)

			item := model.OrderItem{
				ID:        itemID,
				OrderID:   orderID,
				UserID:    purchase.UserID,
				ProductID: product.ID,
				Status:    status,
				SalePrice: salePrice,
				CreatedAt: purchase.CreatedAt,
			}
			// Ship and return delays are drawn per item, not per order.
			if status.Ships() {
				shipped := purchase.CreatedAt.AddDate(0, 0, m.src.IntBetween(shipDelayMinDays, shipDelayMaxDays))
				item.ShippedAt = &shipped
				if status == enums.OrderStatusReturned {
					returned := shipped.AddDate(0, 0, m.src.IntBetween(returnDelayMinDays, returnDelayMaxDays))
					item.ReturnedAt = &returned
				}
			}
			items = append(items, item)
			itemID++
		}

		orders = append(orders, model.Order{
			ID:             orderID,
			UserID:         purchase.UserID,
			Status:         status,
			NumOfItem:      itemCount,
			TotalSalePrice: total.Round(2),
			CreatedAt:      purchase.CreatedAt,
			TrafficSource:  purchase.TrafficSource,
		})
		orderID++
	}
	return orders, items, nil
}
