package analysis

import (
	"math"

	"github.com/angelmondragon/storesim/pkg/enums"
)

// revenueOutlierZ is the z-score above which an order value counts as an
// outlier in the quality report.
const revenueOutlierZ = 3.0

// ComputeQuality runs the referential and distributional sanity checks the
// report opens with.
func ComputeQuality(tables *Tables) QualityReport {
	report := QualityReport{}

	for _, user := range tables.Users {
		if user.State == nil {
			report.NullStates++
		}
	}

	type sessionStage struct {
		session int64
		stage   enums.EventType
	}
	stageSeen := make(map[sessionStage]int)
	knownUsers := make(map[int64]struct{}, len(tables.Users))
	for _, user := range tables.Users {
		knownUsers[user.ID] = struct{}{}
	}
	for _, ev := range tables.Events {
		stageSeen[sessionStage{session: ev.SessionID, stage: ev.Type}]++
		if _, ok := knownUsers[ev.UserID]; !ok {
			report.OrphanedEvents++
		}
	}
	for _, count := range stageSeen {
		if count > 1 {
			report.DuplicateStagePairs++
		}
	}

	if len(tables.Orders) == 0 {
		return report
	}

	var sum, sumSq float64
	for _, order := range tables.Orders {
		v, _ := order.TotalSalePrice.Float64()
		sum += v
		sumSq += v * v
	}
	n := float64(len(tables.Orders))
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	std := math.Sqrt(variance)

	report.AvgOrderValue = mean
	report.StdOrderValue = std
	if std > 0 {
		for _, order := range tables.Orders {
			v, _ := order.TotalSalePrice.Float64()
			if math.Abs(v-mean)/std > revenueOutlierZ {
				report.RevenueOutliers++
			}
		}
	}
	return report
}
