package analysis

import (
	"sort"

	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/enums"
)

// ComputeFunnel counts unique users per funnel stage with drop-off between
// consecutive stages and conversion from the top.
func ComputeFunnel(events []model.Event) []FunnelStageRow {
	perStage := make(map[enums.EventType]map[int64]struct{}, len(enums.FunnelStages))
	for _, stage := range enums.FunnelStages {
		perStage[stage] = make(map[int64]struct{})
	}
	for _, ev := range events {
		perStage[ev.Type][ev.UserID] = struct{}{}
	}

	rows := make([]FunnelStageRow, 0, len(enums.FunnelStages))
	top := len(perStage[enums.EventTypeHome])
	prev := 0
	for i, stage := range enums.FunnelStages {
		users := len(perStage[stage])
		row := FunnelStageRow{Stage: stage.String(), Users: users}
		if top > 0 {
			row.ConversionFromTopPct = pct(users, top)
		}
		if i > 0 && prev > 0 {
			row.DropOffPct = 100 - pct(users, prev)
		}
		rows = append(rows, row)
		prev = users
	}
	return rows
}

// ComputeFunnelBySource splits the funnel by acquisition channel, sorted by
// overall conversion descending.
func ComputeFunnelBySource(events []model.Event) []SourceFunnelRow {
	type stageSets map[enums.EventType]map[int64]struct{}
	perSource := make(map[enums.TrafficSource]stageSets)

	for _, ev := range events {
		sets, ok := perSource[ev.TrafficSource]
		if !ok {
			sets = make(stageSets, len(enums.FunnelStages))
			for _, stage := range enums.FunnelStages {
				sets[stage] = make(map[int64]struct{})
			}
			perSource[ev.TrafficSource] = sets
		}
		sets[ev.Type][ev.UserID] = struct{}{}
	}

	rows := make([]SourceFunnelRow, 0, len(perSource))
	for source, sets := range perSource {
		row := SourceFunnelRow{
			Source:   source.String(),
			Home:     len(sets[enums.EventTypeHome]),
			Category: len(sets[enums.EventTypeCategory]),
			Product:  len(sets[enums.EventTypeProduct]),
			Cart:     len(sets[enums.EventTypeCart]),
			Purchase: len(sets[enums.EventTypePurchase]),
		}
		if row.Home > 0 {
			row.ConversionPct = pct(row.Purchase, row.Home)
		}
		if row.Cart > 0 {
			row.CartToPurchasePct = pct(row.Purchase, row.Cart)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ConversionPct == rows[j].ConversionPct {
			return rows[i].Source < rows[j].Source
		}
		return rows[i].ConversionPct > rows[j].ConversionPct
	})
	return rows
}

func pct(part, whole int) float64 {
	return float64(part) / float64(whole) * 100
}
