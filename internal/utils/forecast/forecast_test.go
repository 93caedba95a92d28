package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEndOfMonth(t *testing.T) {
	t.Run("no observations returns the balance unchanged", func(t *testing.T) {
		balance := decimal.NewFromInt(500000)
		got := EndOfMonth(balance, nil, 10)
		assert.True(t, got.Equal(balance))
	})

	t.Run("extrapolates the average daily expense", func(t *testing.T) {
		balance := decimal.NewFromInt(1000000)
		observations := []decimal.Decimal{
			decimal.NewFromInt(40000),
			decimal.NewFromInt(60000),
		}
		// Average 50000/day over 10 remaining days.
		got := EndOfMonth(balance, observations, 10)
		assert.True(t, got.Equal(decimal.NewFromInt(500000)))
	})

	t.Run("floors the projection at zero", func(t *testing.T) {
		balance := decimal.NewFromInt(100000)
		observations := []decimal.Decimal{decimal.NewFromInt(50000)}
		got := EndOfMonth(balance, observations, 30)
		assert.True(t, got.IsZero())
	})

	t.Run("zero days remaining returns the balance", func(t *testing.T) {
		balance := decimal.NewFromInt(750000)
		observations := []decimal.Decimal{decimal.NewFromInt(50000)}
		got := EndOfMonth(balance, observations, 0)
		assert.True(t, got.Equal(balance))
	})
}

func TestGoalProgress(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("computes daily and monthly pacing", func(t *testing.T) {
		target := decimal.NewFromInt(1000000)
		current := decimal.NewFromInt(250000)
		targetDate := now.AddDate(0, 0, 50)

		pacing := GoalProgress(target, current, targetDate, now)

		assert.InDelta(t, 25, pacing.Progress, 0.001)
		assert.Equal(t, 50, pacing.DaysRemaining)
		assert.True(t, pacing.DailyNeeded.Equal(decimal.NewFromInt(15000)))
		assert.True(t, pacing.MonthlyNeeded.Equal(decimal.NewFromInt(450000)))
		assert.True(t, pacing.IsOnTrack)
	})

	t.Run("reached goal needs nothing", func(t *testing.T) {
		target := decimal.NewFromInt(1000000)
		pacing := GoalProgress(target, target, now.AddDate(0, 1, 0), now)

		assert.InDelta(t, 100, pacing.Progress, 0.001)
		assert.True(t, pacing.DailyNeeded.IsZero())
		assert.False(t, pacing.IsOnTrack)
	})

	t.Run("past target date met", func(t *testing.T) {
		target := decimal.NewFromInt(1000000)
		pacing := GoalProgress(target, target, now.AddDate(0, 0, -1), now)

		assert.InDelta(t, 100, pacing.Progress, 0.001)
		assert.Zero(t, pacing.DaysRemaining)
		assert.True(t, pacing.IsOnTrack)
	})

	t.Run("past target date missed", func(t *testing.T) {
		target := decimal.NewFromInt(1000000)
		current := decimal.NewFromInt(400000)
		pacing := GoalProgress(target, current, now.AddDate(0, 0, -1), now)

		assert.InDelta(t, 100, pacing.Progress, 0.001)
		assert.False(t, pacing.IsOnTrack)
	})

	t.Run("partial day remaining rounds up", func(t *testing.T) {
		target := decimal.NewFromInt(100000)
		targetDate := now.Add(36 * time.Hour)

		pacing := GoalProgress(target, decimal.Zero, targetDate, now)

		assert.Equal(t, 2, pacing.DaysRemaining)
	})
}
