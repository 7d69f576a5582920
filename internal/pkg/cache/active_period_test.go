package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/calendar"
)

func newTestCache(t *testing.T, ttl time.Duration) (budget.ActivePeriodCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewActivePeriodCache(client, ttl), mr
}

func TestActivePeriodCache(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)

	period := budget.BudgetPeriod{
		ID:          "0192b3c4-0000-7000-8000-000000000001",
		CompanyID:   "0192b3c4-0000-7000-8000-0000000000aa",
		Year:        2025,
		StartDate:   calendar.Date(2025, time.January, 1),
		EndDate:     calendar.Date(2025, time.December, 31),
		Status:      budget.StatusOpen,
		Description: "FY2025",
		CreatedAt:   time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
	}

	_, ok, err := c.Get(ctx, period.CompanyID)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, c.Set(ctx, period))
	assert.True(t, mr.Exists(activePeriodKeyPrefix+period.CompanyID))

	got, ok, err := c.Get(ctx, period.CompanyID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, period.ID, got.ID)
	assert.Equal(t, budget.StatusOpen, got.Status)
	assert.Equal(t, "2025-01-01", calendar.Format(got.StartDate))
	assert.Equal(t, "2025-12-31", calendar.Format(got.EndDate))
	assert.True(t, period.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, c.Invalidate(ctx, period.CompanyID))
	_, ok, err = c.Get(ctx, period.CompanyID)
	require.NoError(t, err)
	assert.False(t, ok, "invalidated entry should miss")

	// Invalidating a missing key is not an error.
	require.NoError(t, c.Invalidate(ctx, period.CompanyID))
}

func TestActivePeriodCacheExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, 30*time.Second)

	period := budget.BudgetPeriod{
		ID:        "0192b3c4-0000-7000-8000-000000000002",
		CompanyID: "0192b3c4-0000-7000-8000-0000000000bb",
		Year:      2026,
		StartDate: calendar.Date(2026, time.January, 1),
		EndDate:   calendar.Date(2026, time.December, 31),
		Status:    budget.StatusOpen,
	}
	require.NoError(t, c.Set(ctx, period))

	mr.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx, period.CompanyID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActivePeriodCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	c := NewActivePeriodCache(client, time.Minute)
	mr.Close()

	_, _, err = c.Get(ctx, "company")
	assert.Error(t, err)
}
