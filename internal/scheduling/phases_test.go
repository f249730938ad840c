package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePhaseBounds(t *testing.T) {
	loc := time.UTC
	startAt := time.Date(2026, 3, 16, 11, 30, 0, 0, loc)

	t.Run("two-phase booking", func(t *testing.T) {
		bounds, err := ComputePhaseBounds(startAt, 30, 60, 30)
		require.NoError(t, err)

		assert.Equal(t, startAt, bounds.Phase1Start)
		assert.Equal(t, startAt.Add(30*time.Minute), bounds.Phase1End)
		assert.Equal(t, startAt.Add(90*time.Minute), bounds.Phase2Start)
		assert.Equal(t, startAt.Add(120*time.Minute), bounds.Phase2End)
		assert.True(t, bounds.HasFollowUp())
		assert.Equal(t, 120, bounds.TotalSpanMinutes())
	})

	t.Run("gap equals wait exactly for any combination", func(t *testing.T) {
		// phase2Start - phase1End == wait, в целых минутах, без дрейфа
		for _, primary := range []int{5, 30, 45, 480} {
			for _, wait := range []int{0, 15, 45, 240} {
				for _, followUp := range []int{0, 15, 90} {
					bounds, err := ComputePhaseBounds(startAt, primary, wait, followUp)
					require.NoError(t, err)

					gap := bounds.Phase2Start.Sub(bounds.Phase1End)
					assert.Equal(t, time.Duration(wait)*time.Minute, gap)
					assert.Equal(t, time.Duration(followUp)*time.Minute, bounds.Phase2End.Sub(bounds.Phase2Start))
				}
			}
		}
	})

	t.Run("zero follow-up collapses phase 2", func(t *testing.T) {
		bounds, err := ComputePhaseBounds(startAt, 30, 15, 0)
		require.NoError(t, err)

		assert.False(t, bounds.HasFollowUp())
		assert.Equal(t, bounds.Phase2Start, bounds.Phase2End)
		assert.Equal(t, 30, bounds.TotalSpanMinutes())
	})

	t.Run("validation failures", func(t *testing.T) {
		_, err := ComputePhaseBounds(time.Time{}, 30, 0, 0)
		require.ErrorIs(t, err, ErrInvalidInterval)

		_, err = ComputePhaseBounds(startAt, 0, 0, 0)
		require.ErrorIs(t, err, ErrInvalidDuration)

		_, err = ComputePhaseBounds(startAt, 30, -5, 0)
		require.ErrorIs(t, err, ErrInvalidDuration)

		_, err = ComputePhaseBounds(startAt, 30, 0, -10)
		require.ErrorIs(t, err, ErrInvalidDuration)
	})
}

func TestPhaseBoundsServiceSegments(t *testing.T) {
	loc := time.UTC
	startAt := time.Date(2026, 3, 16, 11, 30, 0, 0, loc)

	t.Run("two segments with a gap", func(t *testing.T) {
		bounds, err := ComputePhaseBounds(startAt, 30, 60, 30)
		require.NoError(t, err)

		segments, err := bounds.ServiceSegments("2026-03-16", loc)
		require.NoError(t, err)
		require.Len(t, segments, 2)
		assert.Equal(t, Span{StartMin: 690, EndMin: 720}, segments[0])
		assert.Equal(t, Span{StartMin: 810, EndMin: 840}, segments[1])
	})

	t.Run("single segment without follow-up", func(t *testing.T) {
		bounds, err := ComputePhaseBounds(startAt, 45, 0, 0)
		require.NoError(t, err)

		segments, err := bounds.ServiceSegments("2026-03-16", loc)
		require.NoError(t, err)
		require.Len(t, segments, 1)
		assert.Equal(t, Span{StartMin: 690, EndMin: 735}, segments[0])
	})
}
