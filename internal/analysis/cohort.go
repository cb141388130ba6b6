package analysis

import (
	"sort"
	"time"

	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/enums"
)

// minCohortMonths is the observation floor below which a cohort is dropped
// from the retention report.
const minCohortMonths = 3

// validPurchase reports whether an order counts as a real purchase for
// retention purposes. Cancelled and still-processing orders do not.
func validPurchase(status enums.OrderStatus) bool {
	return status.Ships()
}

// ComputeCohorts groups buyers by first-purchase month and tracks, for each
// following month, the share of the cohort that purchased again.
func ComputeCohorts(orders []model.Order) []CohortRow {
	// first purchase month per user
	firstMonth := make(map[int64]int)
	for _, order := range orders {
		if !validPurchase(order.Status) {
			continue
		}
		m := monthIndex(order.CreatedAt)
		if existing, ok := firstMonth[order.UserID]; !ok || m < existing {
			firstMonth[order.UserID] = m
		}
	}

	// users active per (cohort month, months since first purchase)
	type cohortKey struct {
		cohort int
		offset int
	}
	active := make(map[cohortKey]map[int64]struct{})
	for _, order := range orders {
		if !validPurchase(order.Status) {
			continue
		}
		cohort := firstMonth[order.UserID]
		offset := monthIndex(order.CreatedAt) - cohort
		if offset < 0 || offset >= RetentionMonths {
			continue
		}
		key := cohortKey{cohort: cohort, offset: offset}
		if active[key] == nil {
			active[key] = make(map[int64]struct{})
		}
		active[key][order.UserID] = struct{}{}
	}

	cohortMonths := make([]int, 0)
	seen := make(map[int]bool)
	for _, m := range firstMonth {
		if !seen[m] {
			seen[m] = true
			cohortMonths = append(cohortMonths, m)
		}
	}
	sort.Ints(cohortMonths)

	rows := make([]CohortRow, 0, len(cohortMonths))
	for _, cohort := range cohortMonths {
		size := len(active[cohortKey{cohort: cohort, offset: 0}])
		if size == 0 {
			continue
		}
		row := CohortRow{CohortMonth: monthLabel(cohort), Size: size}
		observed := 0
		for offset := 0; offset < RetentionMonths; offset++ {
			users, ok := active[cohortKey{cohort: cohort, offset: offset}]
			if !ok {
				continue
			}
			retention := pct(len(users), size)
			row.Retention[offset] = &retention
			observed++
		}
		if observed < minCohortMonths {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// monthIndex flattens a timestamp to a linear month count.
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// monthLabel renders a linear month count as YYYY-MM.
func monthLabel(index int) string {
	return time.Date(index/12, time.Month(index%12+1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
