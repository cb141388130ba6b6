package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storesim/internal/dist"
	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/enums"
)

func testCatalog(n int) []model.Product {
	products := make([]model.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, model.Product{
			ID:          int64(i),
			Name:        fmt.Sprintf("Brand Tops & Tees #%d", i),
			RetailPrice: decimal.NewFromFloat(19.99),
		})
	}
	return products
}

func testUsers(n int, createdAt time.Time) []model.User {
	users := make([]model.User, 0, n)
	sources := []enums.TrafficSource{
		enums.TrafficSourceOrganic,
		enums.TrafficSourceSearch,
		enums.TrafficSourceEmail,
		enums.TrafficSourceFacebook,
		enums.TrafficSourceDisplay,
	}
	for i := 1; i <= n; i++ {
		users = append(users, model.User{
			ID:            int64(i),
			TrafficSource: sources[i%len(sources)],
			CreatedAt:     createdAt,
		})
	}
	return users
}

func TestNewSimulatorValidation(t *testing.T) {
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	_, err := NewSimulator(nil, testCatalog(1), end)
	require.Error(t, err)

	_, err = NewSimulator(dist.NewSource(1), nil, end)
	require.Error(t, err, "empty catalog must be rejected")
}

func TestSimulateRequiresUsers(t *testing.T) {
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	sim, err := NewSimulator(dist.NewSource(1), testCatalog(5), end)
	require.NoError(t, err)

	_, _, err = sim.Simulate(context.Background(), nil)
	require.Error(t, err)
}

// Every session must be a strict prefix of the funnel: home, category,
// product, cart, purchase, with no skipped or repeated stages.
func TestSimulateSessionsAreFunnelPrefixes(t *testing.T) {
	created := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	sim, err := NewSimulator(dist.NewSource(42), testCatalog(50), end)
	require.NoError(t, err)

	sessions, events, err := sim.Simulate(context.Background(), testUsers(500, created))
	require.NoError(t, err)
	require.NotEmpty(t, sessions)

	bySession := make(map[int64][]model.Event)
	for _, ev := range events {
		bySession[ev.SessionID] = append(bySession[ev.SessionID], ev)
	}

	for _, session := range sessions {
		evs := bySession[session.ID]
		require.NotEmpty(t, evs, "session %d has no events", session.ID)

		prev := evs[0]
		require.Equal(t, enums.EventTypeHome, prev.Type, "session %d must start at home", session.ID)
		assert.Equal(t, "/home", prev.URI)
		assert.Nil(t, prev.ProductID, "no product is bound before the product stage")

		for _, ev := range evs[1:] {
			assert.Equal(t, prev.Type.StageIndex()+1, ev.Type.StageIndex(),
				"session %d skips from %s to %s", session.ID, prev.Type, ev.Type)
			assert.True(t, ev.CreatedAt.After(prev.CreatedAt),
				"session %d timestamps must strictly increase", session.ID)
			assert.Equal(t, session.UserID, ev.UserID)
			prev = ev
		}
		assert.Equal(t, prev.Type, session.Reached)
	}
}

func TestSimulateProductBindingReused(t *testing.T) {
	created := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	catalogSize := 20
	sim, err := NewSimulator(dist.NewSource(7), testCatalog(catalogSize), end)
	require.NoError(t, err)

	_, events, err := sim.Simulate(context.Background(), testUsers(1000, created))
	require.NoError(t, err)

	bound := make(map[int64]int64)
	for _, ev := range events {
		switch ev.Type {
		case enums.EventTypeHome, enums.EventTypeCategory:
			assert.Nil(t, ev.ProductID)
		case enums.EventTypeProduct:
			require.NotNil(t, ev.ProductID)
			assert.GreaterOrEqual(t, *ev.ProductID, int64(1))
			assert.LessOrEqual(t, *ev.ProductID, int64(catalogSize))
			assert.Equal(t, "/product/"+model.FormatID(*ev.ProductID), ev.URI)
			bound[ev.SessionID] = *ev.ProductID
		case enums.EventTypeCart, enums.EventTypePurchase:
			require.NotNil(t, ev.ProductID)
			assert.Equal(t, bound[ev.SessionID], *ev.ProductID,
				"session %d must keep its bound product", ev.SessionID)
		}
	}
}

func TestSimulateEventsStayInsideUserWindow(t *testing.T) {
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	sim, err := NewSimulator(dist.NewSource(3), testCatalog(10), end)
	require.NoError(t, err)

	// A user created right at the dataset end still gets the minimum window.
	lateUser := []model.User{{
		ID:            1,
		TrafficSource: enums.TrafficSourceOrganic,
		CreatedAt:     end.Add(-24 * time.Hour),
	}}
	sessions, _, err := sim.Simulate(context.Background(), lateUser)
	require.NoError(t, err)

	limit := lateUser[0].CreatedAt.Add(minimumWindow)
	for _, session := range sessions {
		assert.False(t, session.StartedAt.Before(lateUser[0].CreatedAt))
		assert.False(t, session.StartedAt.After(limit))
	}
}

func TestSimulateBounceAndPurchaseRates(t *testing.T) {
	created := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	sim, err := NewSimulator(dist.NewSource(42), testCatalog(50), end)
	require.NoError(t, err)

	users := make([]model.User, 0, 20000)
	for i := 1; i <= 20000; i++ {
		users = append(users, model.User{
			ID:            int64(i),
			TrafficSource: enums.TrafficSourceEmail,
			CreatedAt:     created,
		})
	}
	sessions, events, err := sim.Simulate(context.Background(), users)
	require.NoError(t, err)

	counts := make(map[int64]int)
	for _, ev := range events {
		counts[ev.SessionID]++
	}
	bounced := 0
	for _, session := range sessions {
		if counts[session.ID] == 1 && session.Reached == enums.EventTypeHome {
			bounced++
		}
	}
	// home-only sessions = bounce + failed home-to-category roll:
	// 0.35 + 0.65*0.48
	assert.InDelta(t, 0.662, float64(bounced)/float64(len(sessions)), 0.02)

	// Email cart-to-purchase 0.68 applied after the shared early funnel.
	carts, purchases := 0, 0
	for _, session := range sessions {
		switch session.Reached {
		case enums.EventTypeCart:
			carts++
		case enums.EventTypePurchase:
			purchases++
		}
	}
	require.Positive(t, carts+purchases)
	assert.InDelta(t, 0.68, float64(purchases)/float64(carts+purchases), 0.04)
}
