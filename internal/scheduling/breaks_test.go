package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Обед 12:00-13:00
var lunchBreak = []Span{{StartMin: 720, EndMin: 780}}

func TestSegmentOverlapsBreaks(t *testing.T) {
	tests := []struct {
		name     string
		startMin int
		endMin   int
		want     bool
	}{
		{name: "segment inside break", startMin: 730, endMin: 750, want: true},
		{name: "segment covers break", startMin: 700, endMin: 800, want: true},
		{name: "segment overlaps break start", startMin: 700, endMin: 730, want: true},
		{name: "segment overlaps break end", startMin: 770, endMin: 800, want: true},
		{name: "segment before break", startMin: 600, endMin: 660, want: false},
		{name: "segment after break", startMin: 800, endMin: 860, want: false},
		// Граничные случаи: касание — НЕ пересечение, бронирования вплотную
		// к перерыву разрешены
		{name: "segment ends exactly at break start", startMin: 690, endMin: 720, want: false},
		{name: "segment starts exactly at break end", startMin: 780, endMin: 810, want: false},
		{name: "empty segment", startMin: 730, endMin: 730, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentOverlapsBreaks(tt.startMin, tt.endMin, lunchBreak))
		})
	}
}

func TestAnyServiceSegmentOverlapsBreaks(t *testing.T) {
	t.Run("wait gap may cross a break", func(t *testing.T) {
		// Окраска 11:30-12:00, ожидание через обед, смывка 13:00-13:30 — разрешено
		segments := []Span{
			{StartMin: 690, EndMin: 720},
			{StartMin: 780, EndMin: 810},
		}
		assert.False(t, AnyServiceSegmentOverlapsBreaks(segments, lunchBreak))
	})

	t.Run("follow-up inside a break is rejected", func(t *testing.T) {
		segments := []Span{
			{StartMin: 690, EndMin: 720},
			{StartMin: 750, EndMin: 780},
		}
		assert.True(t, AnyServiceSegmentOverlapsBreaks(segments, lunchBreak))
	})

	t.Run("zero-length follow-up is ignored", func(t *testing.T) {
		segments := []Span{
			{StartMin: 690, EndMin: 720},
			{StartMin: 750, EndMin: 750}, // нет follow-up сегмента
		}
		assert.False(t, AnyServiceSegmentOverlapsBreaks(segments, lunchBreak))
	})

	t.Run("no breaks", func(t *testing.T) {
		segments := []Span{{StartMin: 600, EndMin: 660}}
		assert.False(t, AnyServiceSegmentOverlapsBreaks(segments, nil))
	})
}

func TestFilterTimesByBreaks(t *testing.T) {
	candidates := []int{660, 690, 720, 750, 780}

	// Слоты по 30 минут: 11:00 ок, 11:30 ок (кончается ровно в 12:00),
	// 12:00 и 12:30 внутри обеда, 13:00 ок
	got := FilterTimesByBreaks(candidates, 30, lunchBreak)
	assert.Equal(t, []int{660, 690, 780}, got)

	// Нулевая длительность — фильтрация не применяется
	assert.Equal(t, candidates, FilterTimesByBreaks(candidates, 0, lunchBreak))
}

func TestMergeBreaks(t *testing.T) {
	salon := []Span{{StartMin: 720, EndMin: 780}}
	worker := []Span{{StartMin: 600, EndMin: 615}, {StartMin: 900, EndMin: 900}} // второй пустой

	merged := MergeBreaks(salon, worker)
	require.Len(t, merged, 2)
	assert.Equal(t, Span{StartMin: 600, EndMin: 615}, merged[0])
	assert.Equal(t, Span{StartMin: 720, EndMin: 780}, merged[1])
}

func TestValidateBreaks(t *testing.T) {
	window := Span{StartMin: 540, EndMin: 1080} // 09:00-18:00

	require.NoError(t, ValidateBreaks(window, []Span{{StartMin: 720, EndMin: 780}}))

	err := ValidateBreaks(window, []Span{{StartMin: 780, EndMin: 720}})
	require.ErrorIs(t, err, ErrInvalidBreak)

	err = ValidateBreaks(window, []Span{{StartMin: 500, EndMin: 560}})
	require.ErrorIs(t, err, ErrInvalidBreak)

	err = ValidateBreaks(window, []Span{{StartMin: 1050, EndMin: 1100}})
	require.ErrorIs(t, err, ErrInvalidBreak)
}
