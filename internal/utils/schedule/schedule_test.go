package schedule

import (
	"testing"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestNextDue(t *testing.T) {
	tests := []struct {
		name       string
		freq       domain.Frequency
		dayOfMonth *int
		from       time.Time
		want       time.Time
	}{
		{
			name: "daily advances one day",
			freq: domain.Daily,
			from: time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "weekly advances seven days",
			freq: domain.Weekly,
			from: time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 22, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly mid-month keeps the day",
			freq: domain.Monthly,
			from: time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 7, 15, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly jan 31 clamps to feb 28",
			freq: domain.Monthly,
			from: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly jan 31 clamps to feb 29 on leap year",
			freq: domain.Monthly,
			from: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "monthly anchor restores the day after a short month",
			freq:       domain.Monthly,
			dayOfMonth: intPtr(31),
			from:       time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			want:       time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "monthly anchor clamps april to 30",
			freq:       domain.Monthly,
			dayOfMonth: intPtr(31),
			from:       time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			want:       time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly december rolls into the next year",
			freq: domain.Monthly,
			from: time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "yearly advances one year",
			freq: domain.Yearly,
			from: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDue(tt.freq, tt.dayOfMonth, tt.from)
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNextDue_UnknownFrequency(t *testing.T) {
	_, err := NextDue(domain.Frequency("FORTNIGHTLY"), nil, time.Now())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown frequency")
}

func TestNextDue_PreservesClockTime(t *testing.T) {
	from := time.Date(2025, 1, 31, 23, 45, 30, 0, time.UTC)
	got, err := NextDue(domain.Monthly, nil, from)
	assert.NoError(t, err)
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 45, got.Minute())
	assert.Equal(t, 30, got.Second())
}
