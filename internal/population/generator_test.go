package population

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storesim/internal/dist"
)

func window(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2023-01-01")
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", "2024-12-31")
	require.NoError(t, err)
	return start, end
}

func TestNewGeneratorValidation(t *testing.T) {
	start, end := window(t)

	_, err := NewGenerator(nil, start, end)
	require.Error(t, err)

	_, err = NewGenerator(dist.NewSource(1), end, start)
	require.Error(t, err, "inverted window must be rejected")
}

func TestGenerateRejectsWindowInsideSignupMargin(t *testing.T) {
	start, _ := window(t)
	gen, err := NewGenerator(dist.NewSource(1), start, start.Add(10*24*time.Hour))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), 10)
	require.Error(t, err)
}

func TestGenerateUserInvariants(t *testing.T) {
	start, end := window(t)
	gen, err := NewGenerator(dist.NewSource(42), start, end)
	require.NoError(t, err)

	users, err := gen.Generate(context.Background(), 2000)
	require.NoError(t, err)
	require.Len(t, users, 2000)

	signupEnd := end.Add(-signupMargin)
	for i, u := range users {
		assert.Equal(t, int64(i+1), u.ID)
		assert.GreaterOrEqual(t, u.Age, ageMin)
		assert.LessOrEqual(t, u.Age, ageMax)
		assert.False(t, u.CreatedAt.Before(start), "created_at %s before window", u.CreatedAt)
		assert.True(t, u.CreatedAt.Before(signupEnd), "created_at %s inside signup margin", u.CreatedAt)

		if u.Country == countryUS {
			require.NotNil(t, u.State, "US user %d must have a state", u.ID)
			assert.Contains(t, usStates, *u.State)
		} else {
			assert.Nil(t, u.State, "non-US user %d must have no state", u.ID)
		}
	}
}

func TestGenerateDistributionsRoughlyMatchWeights(t *testing.T) {
	start, end := window(t)
	gen, err := NewGenerator(dist.NewSource(7), start, end)
	require.NoError(t, err)

	users, err := gen.Generate(context.Background(), 20000)
	require.NoError(t, err)

	us := 0
	for _, u := range users {
		if u.Country == countryUS {
			us++
		}
	}
	assert.InDelta(t, 0.80, float64(us)/float64(len(users)), 0.02)
}
