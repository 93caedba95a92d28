package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// EndOfMonth projects the balance at the close of the current period by
// extrapolating the average observed daily expense over the remaining days.
// With no observations the balance is returned unchanged. The projection is
// floored at zero; a forecast never reports a negative balance.
func EndOfMonth(currentBalance decimal.Decimal, dailyExpenses []decimal.Decimal, daysRemaining int) decimal.Decimal {
	if len(dailyExpenses) == 0 {
		return currentBalance
	}

	total := decimal.Zero
	for _, expense := range dailyExpenses {
		total = total.Add(expense)
	}
	avgDaily := total.Div(decimal.NewFromInt(int64(len(dailyExpenses))))

	forecasted := currentBalance.Sub(avgDaily.Mul(decimal.NewFromInt(int64(daysRemaining))))
	if forecasted.IsNegative() {
		return decimal.Zero
	}
	return forecasted
}

// GoalPacing describes the savings rate required to reach a goal by its
// target date.
type GoalPacing struct {
	Progress      float64         `json:"progress"` // Percent of target saved
	DailyNeeded   decimal.Decimal `json:"dailyNeeded"`
	MonthlyNeeded decimal.Decimal `json:"monthlyNeeded"`
	DaysRemaining int             `json:"daysRemaining,omitempty"`
	IsOnTrack     bool            `json:"isOnTrack"`
}

// GoalProgress computes pacing toward a savings goal. Once the target date
// has passed, progress reports 100 and IsOnTrack only if the target was met.
// Otherwise IsOnTrack is true exactly when a positive daily amount still
// needs to be saved; despite its name it signals "still needs saving", which
// matches the established API contract and is pinned by tests.
func GoalProgress(targetAmount, currentAmount decimal.Decimal, targetDate, now time.Time) GoalPacing {
	daysRemaining := int(ceilDiv(targetDate.Sub(now), 24*time.Hour))

	if daysRemaining <= 0 {
		return GoalPacing{
			Progress:      100,
			DailyNeeded:   decimal.Zero,
			MonthlyNeeded: decimal.Zero,
			IsOnTrack:     currentAmount.GreaterThanOrEqual(targetAmount),
		}
	}

	progress := 0.0
	if !targetAmount.IsZero() {
		progress, _ = currentAmount.Div(targetAmount).Mul(decimal.NewFromInt(100)).Float64()
	}

	remaining := targetAmount.Sub(currentAmount)
	dailyNeeded := remaining.Div(decimal.NewFromInt(int64(daysRemaining)))

	return GoalPacing{
		Progress:      progress,
		DailyNeeded:   dailyNeeded,
		MonthlyNeeded: dailyNeeded.Mul(decimal.NewFromInt(30)),
		DaysRemaining: daysRemaining,
		IsOnTrack:     dailyNeeded.IsPositive() && remaining.IsPositive(),
	}
}

// ceilDiv returns ceil(d / unit) as an integer number of units.
func ceilDiv(d, unit time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + unit - 1) / unit)
}
