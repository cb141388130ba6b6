package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunnelStageOrder(t *testing.T) {
	require.Len(t, FunnelStages, 5)
	assert.Equal(t, 0, EventTypeHome.StageIndex())
	assert.Equal(t, 4, EventTypePurchase.StageIndex())
	assert.Equal(t, -1, EventType("checkout").StageIndex())
}

func TestParseEventType(t *testing.T) {
	stage, err := ParseEventType("cart")
	require.NoError(t, err)
	assert.Equal(t, EventTypeCart, stage)

	_, err = ParseEventType("checkout")
	require.Error(t, err)
}

func TestOrderStatusShips(t *testing.T) {
	assert.True(t, OrderStatusComplete.Ships())
	assert.True(t, OrderStatusShipped.Ships())
	assert.True(t, OrderStatusReturned.Ships())
	assert.False(t, OrderStatusCancelled.Ships())
	assert.False(t, OrderStatusProcessing.Ships())
}

func TestParseTrafficSource(t *testing.T) {
	source, err := ParseTrafficSource("Email")
	require.NoError(t, err)
	assert.Equal(t, TrafficSourceEmail, source)

	_, err = ParseTrafficSource("Billboard")
	require.Error(t, err)
}
