package analysis

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

// RenderCharts writes the PNG charts for a report into dir. The cohort
// retention matrix is exported as CSV only; a heatmap does not translate to
// the chart primitives used here.
func RenderCharts(dir string, report *Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating chart directory %s: %w", dir, err)
	}
	if err := renderFunnelChart(filepath.Join(dir, "01_purchase_funnel.png"), report.Funnel); err != nil {
		return err
	}
	if err := renderSourceChart(filepath.Join(dir, "02_funnel_by_traffic_source.png"), report.BySource); err != nil {
		return err
	}
	if err := renderTrendChart(filepath.Join(dir, "03_monthly_revenue.png"), report.Trend); err != nil {
		return err
	}
	if err := renderSegmentChart(filepath.Join(dir, "04_customer_segmentation.png"), report.Segments); err != nil {
		return err
	}
	return nil
}

func renderFunnelChart(path string, funnel []FunnelStageRow) error {
	bars := make([]chart.Value, 0, len(funnel))
	for _, stage := range funnel {
		bars = append(bars, chart.Value{Value: float64(stage.Users), Label: stage.Stage})
	}
	graph := chart.BarChart{
		Title:    "Purchase Funnel - Unique Users per Stage",
		Width:    900,
		Height:   500,
		BarWidth: 80,
		Bars:     bars,
	}
	return renderPNG(path, graph.Render)
}

func renderSourceChart(path string, rows []SourceFunnelRow) error {
	bars := make([]chart.Value, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, chart.Value{Value: row.ConversionPct, Label: row.Source})
	}
	graph := chart.BarChart{
		Title:    "Overall Conversion Rate by Traffic Source (%)",
		Width:    900,
		Height:   500,
		BarWidth: 80,
		Bars:     bars,
	}
	return renderPNG(path, graph.Render)
}

func renderTrendChart(path string, trend []TrendRow) error {
	xs := make([]time.Time, 0, len(trend))
	ys := make([]float64, 0, len(trend))
	for _, row := range trend {
		month, err := time.Parse("2006-01", row.Month)
		if err != nil {
			return fmt.Errorf("parsing trend month %q: %w", row.Month, err)
		}
		revenue, _ := row.TotalRevenue.Float64()
		xs = append(xs, month)
		ys = append(ys, revenue)
	}
	graph := chart.Chart{
		Title:  "Monthly Revenue",
		Width:  1100,
		Height: 500,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "revenue",
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return renderPNG(path, graph.Render)
}

func renderSegmentChart(path string, segments []SegmentRow) error {
	values := make([]chart.Value, 0, len(segments))
	for _, segment := range segments {
		values = append(values, chart.Value{Value: segment.RevenueSharePct, Label: segment.Segment})
	}
	graph := chart.PieChart{
		Title:  "Revenue Share by Customer Segment",
		Width:  700,
		Height: 700,
		Values: values,
	}
	return renderPNG(path, graph.Render)
}

func renderPNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
