package anomaly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		history []float64
		want    bool
	}{
		{
			name:    "no history is never anomalous",
			current: 1000000,
			history: nil,
			want:    false,
		},
		{
			name:    "amount within two deviations passes",
			current: 26000,
			history: []float64{20000, 25000, 22000, 23000},
			want:    false,
		},
		{
			name:    "amount far above the mean is flagged",
			current: 500000,
			history: []float64{20000, 25000, 22000, 23000},
			want:    true,
		},
		{
			name:    "equal to the single sample passes",
			current: 50000,
			history: []float64{50000},
			want:    false,
		},
		{
			name:    "anything above a single sample is flagged",
			current: 50001,
			history: []float64{50000},
			want:    true,
		},
		{
			name:    "uniform history flags any increase",
			current: 30001,
			history: []float64{30000, 30000, 30000},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.current, tt.history)
			assert.Equal(t, tt.want, got.IsAnomaly)
		})
	}
}

func TestDetect_ResultFields(t *testing.T) {
	result := Detect(100000, []float64{20000, 20000, 20000, 20000})

	assert.True(t, result.IsAnomaly)
	assert.InDelta(t, 20000, result.Average, 0.001)
	assert.InDelta(t, 100000, result.Current, 0.001)
	// 100000 is 400% above a 20000 average.
	assert.Contains(t, result.Reason, "400.0%")
}

func TestDetect_NotAnomalousCarriesNoDetails(t *testing.T) {
	result := Detect(20000, []float64{20000, 21000, 19000})

	assert.False(t, result.IsAnomaly)
	assert.Empty(t, result.Reason)
	assert.Zero(t, result.Average)
	assert.Zero(t, result.Current)
}
