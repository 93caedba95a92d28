package anomaly

import (
	"fmt"
	"math"
)

// Result holds the outcome of an anomaly check on a candidate expense.
type Result struct {
	IsAnomaly bool    `json:"isAnomaly"`
	Reason    string  `json:"reason,omitempty"`
	Average   float64 `json:"average,omitempty"`
	Current   float64 `json:"current,omitempty"`
}

// Detect flags a candidate expense amount as anomalous when it exceeds the
// historical mean by more than two population standard deviations. With no
// history nothing can be anomalous. With a single sample the deviation is
// zero, so any amount above that sample is flagged.
func Detect(currentAmount float64, historicalAmounts []float64) Result {
	if len(historicalAmounts) == 0 {
		return Result{IsAnomaly: false}
	}

	var sum float64
	for _, amount := range historicalAmounts {
		sum += amount
	}
	mean := sum / float64(len(historicalAmounts))

	var varianceSum float64
	for _, amount := range historicalAmounts {
		varianceSum += (amount - mean) * (amount - mean)
	}
	stdDev := math.Sqrt(varianceSum / float64(len(historicalAmounts)))

	threshold := mean + 2*stdDev
	if currentAmount <= threshold {
		return Result{IsAnomaly: false}
	}

	// Percentage above the average; mean is non-zero here whenever the
	// threshold was exceeded with non-negative history, but guard anyway.
	percentAbove := 0.0
	if mean != 0 {
		percentAbove = (currentAmount/mean - 1) * 100
	}

	return Result{
		IsAnomaly: true,
		Reason:    fmt.Sprintf("Pengeluaran ini %.1f%% lebih tinggi dari rata-rata", percentAbove),
		Average:   mean,
		Current:   currentAmount,
	}
}
