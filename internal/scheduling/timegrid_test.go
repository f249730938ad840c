package scheduling

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStart(t *testing.T) {
	loc := time.UTC

	start, err := DayStart("2026-03-15", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, loc), start)

	_, err = DayStart("15.03.2026", loc)
	require.ErrorIs(t, err, ErrInvalidDayKey)
}

func TestMinutesSinceDayStart(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name    string
		instant time.Time
		want    int
	}{
		{
			name:    "inside the day",
			instant: time.Date(2026, 3, 15, 10, 30, 0, 0, loc),
			want:    630,
		},
		{
			name:    "midnight",
			instant: time.Date(2026, 3, 15, 0, 0, 0, 0, loc),
			want:    0,
		},
		{
			// Момент до полуночи названного дня — отрицательный результат
			name:    "before the day",
			instant: time.Date(2026, 3, 14, 23, 0, 0, 0, loc),
			want:    -60,
		},
		{
			// Момент после конца дня — больше 1440
			name:    "after the day",
			instant: time.Date(2026, 3, 16, 1, 0, 0, 0, loc),
			want:    1500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinutesSinceDayStart("2026-03-15", loc, tt.instant)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapToGranularity(t *testing.T) {
	tests := []struct {
		name        string
		minutes     float64
		granularity int
		bounds      *SnapBounds
		want        int
	}{
		{name: "23 snaps to 30", minutes: 23, granularity: 15, want: 30},
		{name: "22 snaps to 15", minutes: 22, granularity: 15, want: 15},
		{name: "exact multiple unchanged", minutes: 45, granularity: 15, want: 45},
		{name: "7 clamps up to min 15", minutes: 7, granularity: 15, bounds: &SnapBounds{Min: 15, Max: 480}, want: 15},
		{name: "snapped above max clamps down", minutes: 500, granularity: 15, bounds: &SnapBounds{Min: 15, Max: 480}, want: 480},
		{name: "zero granularity falls back to default", minutes: 23, granularity: 0, want: 30},
		{name: "NaN yields zero", minutes: math.NaN(), granularity: 15, want: 0},
		{name: "positive infinity yields zero", minutes: math.Inf(1), granularity: 15, want: 0},
		{name: "negative infinity yields zero", minutes: math.Inf(-1), granularity: 15, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SnapToGranularity(tt.minutes, tt.granularity, tt.bounds))
		})
	}
}

func TestMinutesToOffsetPx(t *testing.T) {
	assert.Equal(t, 0, MinutesToOffsetPx(0))
	assert.Equal(t, 60*PixelsPerMinute, MinutesToOffsetPx(60))
}
