package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/enums"
)

// ComputeTrend aggregates traffic, revenue and conversion per calendar month.
// Visitors are unique users with a home event in the month; buyers and
// revenue come from valid purchases only.
func ComputeTrend(events []model.Event, orders []model.Order) []TrendRow {
	visitors := make(map[int]map[int64]struct{})
	for _, ev := range events {
		if ev.Type != enums.EventTypeHome {
			continue
		}
		m := monthIndex(ev.CreatedAt)
		if visitors[m] == nil {
			visitors[m] = make(map[int64]struct{})
		}
		visitors[m][ev.UserID] = struct{}{}
	}

	type monthAgg struct {
		revenue decimal.Decimal
		buyers  map[int64]struct{}
		orders  int
	}
	byMonth := make(map[int]*monthAgg)
	for _, order := range orders {
		if !validPurchase(order.Status) {
			continue
		}
		m := monthIndex(order.CreatedAt)
		agg, ok := byMonth[m]
		if !ok {
			agg = &monthAgg{revenue: decimal.Zero, buyers: make(map[int64]struct{})}
			byMonth[m] = agg
		}
		agg.revenue = agg.revenue.Add(order.TotalSalePrice)
		agg.buyers[order.UserID] = struct{}{}
		agg.orders++
	}

	months := make([]int, 0, len(visitors))
	for m := range visitors {
		months = append(months, m)
	}
	sort.Ints(months)

	rows := make([]TrendRow, 0, len(months))
	var prevRevenue *decimal.Decimal
	for _, m := range months {
		row := TrendRow{
			Month:          monthLabel(m),
			UniqueVisitors: len(visitors[m]),
			TotalRevenue:   decimal.Zero,
			AvgOrderValue:  decimal.Zero,
		}
		if agg, ok := byMonth[m]; ok {
			row.TotalRevenue = agg.revenue
			row.UniqueBuyers = len(agg.buyers)
			row.TotalOrders = agg.orders
			if agg.orders > 0 {
				row.AvgOrderValue = agg.revenue.Div(decimal.NewFromInt(int64(agg.orders))).Round(2)
			}
		}
		if row.UniqueVisitors > 0 {
			row.ConversionPct = pct(row.UniqueBuyers, row.UniqueVisitors)
		}
		if prevRevenue != nil && prevRevenue.IsPositive() {
			growth, _ := row.TotalRevenue.Sub(*prevRevenue).
				Div(*prevRevenue).
				Mul(decimal.NewFromInt(100)).
				Float64()
			row.MoMGrowthPct = &growth
		}
		revenue := row.TotalRevenue
		prevRevenue = &revenue
		rows = append(rows, row)
	}
	return rows
}
