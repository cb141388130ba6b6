package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storesim/internal/model"
)

// Spend tier boundaries in dollars of lifetime purchase value.
var segmentTiers = []struct {
	label string
	upper decimal.Decimal
}{
	{label: "Low (<$50)", upper: decimal.NewFromInt(50)},
	{label: "Mid ($50-$150)", upper: decimal.NewFromInt(150)},
	{label: "High ($150-$400)", upper: decimal.NewFromInt(400)},
	{label: "VIP (>$400)", upper: decimal.Decimal{}},
}

// ComputeSegments buckets customers by lifetime spend across their valid
// orders and reports each tier's size, averages and revenue share.
func ComputeSegments(orders []model.Order) []SegmentRow {
	type customer struct {
		spend  decimal.Decimal
		orders int
	}
	customers := make(map[int64]*customer)
	for _, order := range orders {
		if !validPurchase(order.Status) {
			continue
		}
		c, ok := customers[order.UserID]
		if !ok {
			c = &customer{spend: decimal.Zero}
			customers[order.UserID] = c
		}
		c.spend = c.spend.Add(order.TotalSalePrice)
		c.orders++
	}

	type tierAgg struct {
		customers int
		orders    int
		revenue   decimal.Decimal
	}
	aggs := make([]tierAgg, len(segmentTiers))
	for i := range aggs {
		aggs[i].revenue = decimal.Zero
	}
	totalRevenue := decimal.Zero

	for _, c := range customers {
		tier := tierFor(c.spend)
		aggs[tier].customers++
		aggs[tier].orders += c.orders
		aggs[tier].revenue = aggs[tier].revenue.Add(c.spend)
		totalRevenue = totalRevenue.Add(c.spend)
	}

	rows := make([]SegmentRow, 0, len(segmentTiers))
	for i, tier := range segmentTiers {
		agg := aggs[i]
		row := SegmentRow{
			Segment:      tier.label,
			Customers:    agg.customers,
			AvgSpend:     decimal.Zero,
			TotalRevenue: agg.revenue,
		}
		if agg.customers > 0 {
			row.AvgSpend = agg.revenue.Div(decimal.NewFromInt(int64(agg.customers))).Round(2)
			row.AvgOrders = float64(agg.orders) / float64(agg.customers)
		}
		if totalRevenue.IsPositive() {
			share, _ := agg.revenue.Div(totalRevenue).Mul(decimal.NewFromInt(100)).Float64()
			row.RevenueSharePct = share
		}
		rows = append(rows, row)
	}
	return rows
}

func tierFor(spend decimal.Decimal) int {
	for i, tier := range segmentTiers[:len(segmentTiers)-1] {
		if spend.LessThanOrEqual(tier.upper) {
			return i
		}
	}
	return len(segmentTiers) - 1
}
