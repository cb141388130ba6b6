// Package analysis computes descriptive reports over a materialized dataset:
// funnel drop-off, traffic-source quality, cohort retention, monthly revenue
// trend and customer spend segmentation. It consumes the five CSV tables the
// generator publishes and writes report CSVs plus rendered charts.
package analysis

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storesim/internal/model"
)

// Tables is the loaded dataset the reports aggregate over.
type Tables struct {
	Products   []model.Product
	Users      []model.User
	Events     []model.Event
	Orders     []model.Order
	OrderItems []model.OrderItem
}

// FunnelStageRow is one stage of the overall purchase funnel.
type FunnelStageRow struct {
	Stage                string
	Users                int
	ConversionFromTopPct float64
	DropOffPct           float64
}

// FunnelHeader is the funnel_overall.csv header row.
var FunnelHeader = []string{"stage", "users", "conversion_from_top_pct", "drop_off_pct"}

// Record renders the row in FunnelHeader column order.
func (r FunnelStageRow) Record() []string {
	return []string{
		r.Stage,
		strconv.Itoa(r.Users),
		formatPct(r.ConversionFromTopPct),
		formatPct(r.DropOffPct),
	}
}

// SourceFunnelRow is the funnel broken down by one traffic source.
type SourceFunnelRow struct {
	Source            string
	Home              int
	Category          int
	Product           int
	Cart              int
	Purchase          int
	ConversionPct     float64
	CartToPurchasePct float64
}

// SourceFunnelHeader is the funnel_by_source.csv header row.
var SourceFunnelHeader = []string{"traffic_source", "home", "category", "product", "cart", "purchase", "conversion_pct", "cart_to_purchase_pct"}

// Record renders the row in SourceFunnelHeader column order.
func (r SourceFunnelRow) Record() []string {
	return []string{
		r.Source,
		strconv.Itoa(r.Home),
		strconv.Itoa(r.Category),
		strconv.Itoa(r.Product),
		strconv.Itoa(r.Cart),
		strconv.Itoa(r.Purchase),
		formatPct(r.ConversionPct),
		formatPct(r.CartToPurchasePct),
	}
}

// RetentionMonths is how many months past the first purchase a cohort is
// followed for.
const RetentionMonths = 12

// CohortRow is one acquisition cohort with its monthly retention series.
// Retention[0] is always 100; nil months were not observed.
type CohortRow struct {
	CohortMonth string
	Size        int
	Retention   [RetentionMonths]*float64
}

// CohortHeader is the cohort_retention.csv header row.
var CohortHeader = []string{"cohort_month", "cohort_size", "m0", "m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9", "m10", "m11"}

// Record renders the row in CohortHeader column order.
func (r CohortRow) Record() []string {
	record := []string{r.CohortMonth, strconv.Itoa(r.Size)}
	for _, month := range r.Retention {
		if month == nil {
			record = append(record, "")
			continue
		}
		record = append(record, formatPct(*month))
	}
	return record
}

// TrendRow is one calendar month of traffic, revenue and conversion.
type TrendRow struct {
	Month          string
	UniqueVisitors int
	TotalRevenue   decimal.Decimal
	UniqueBuyers   int
	TotalOrders    int
	AvgOrderValue  decimal.Decimal
	ConversionPct  float64
	MoMGrowthPct   *float64
}

// TrendHeader is the monthly_trend.csv header row.
var TrendHeader = []string{"month", "unique_visitors", "total_revenue", "unique_buyers", "total_orders", "avg_order_value", "conversion_pct", "mom_growth_pct"}

// Record renders the row in TrendHeader column order.
func (r TrendRow) Record() []string {
	growth := ""
	if r.MoMGrowthPct != nil {
		growth = formatPct(*r.MoMGrowthPct)
	}
	return []string{
		r.Month,
		strconv.Itoa(r.UniqueVisitors),
		r.TotalRevenue.StringFixed(2),
		strconv.Itoa(r.UniqueBuyers),
		strconv.Itoa(r.TotalOrders),
		r.AvgOrderValue.StringFixed(2),
		formatPct(r.ConversionPct),
		growth,
	}
}

// SegmentRow is one lifetime-spend tier of the customer base.
type SegmentRow struct {
	Segment         string
	Customers       int
	AvgSpend        decimal.Decimal
	AvgOrders       float64
	TotalRevenue    decimal.Decimal
	RevenueSharePct float64
}

// SegmentHeader is the customer_segments.csv header row.
var SegmentHeader = []string{"segment", "customers", "avg_spend", "avg_orders", "total_revenue", "revenue_share_pct"}

// Record renders the row in SegmentHeader column order.
func (r SegmentRow) Record() []string {
	return []string{
		r.Segment,
		strconv.Itoa(r.Customers),
		r.AvgSpend.StringFixed(2),
		strconv.FormatFloat(r.AvgOrders, 'f', 2, 64),
		r.TotalRevenue.StringFixed(2),
		formatPct(r.RevenueSharePct),
	}
}

// QualityReport summarizes referential and distributional sanity checks.
type QualityReport struct {
	NullStates          int
	DuplicateStagePairs int
	OrphanedEvents      int
	RevenueOutliers     int
	AvgOrderValue       float64
	StdOrderValue       float64
}

// Report is the full output of one analysis run.
type Report struct {
	Quality  QualityReport
	Funnel   []FunnelStageRow
	BySource []SourceFunnelRow
	Cohorts  []CohortRow
	Trend    []TrendRow
	Segments []SegmentRow
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
