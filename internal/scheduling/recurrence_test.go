package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/pkg/ptr"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

func countRule(start time.Time, count int) domain.RecurrenceRule {
	return domain.RecurrenceRule{
		StartDate: start,
		TimeOfDay: types.TimeString("10:00"),
		Mode:      domain.RecurrenceByCount,
		Count:     ptr.Ptr(count),
	}
}

func endDateRule(start, end time.Time) domain.RecurrenceRule {
	return domain.RecurrenceRule{
		StartDate: start,
		TimeOfDay: types.TimeString("10:00"),
		Mode:      domain.RecurrenceByEndDate,
		EndDate:   &end,
	}
}

func TestValidateRecurrenceRule(t *testing.T) {
	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	t.Run("valid count rule", func(t *testing.T) {
		assert.NoError(t, ValidateRecurrenceRule(countRule(start, 4), 52))
	})

	t.Run("count below one", func(t *testing.T) {
		err := ValidateRecurrenceRule(countRule(start, 0), 52)
		assert.ErrorIs(t, err, ErrInvalidRecurrenceRule)
	})

	t.Run("count above ceiling", func(t *testing.T) {
		err := ValidateRecurrenceRule(countRule(start, 53), 52)
		assert.ErrorIs(t, err, ErrTooManyOccurrences)
	})

	t.Run("missing count", func(t *testing.T) {
		rule := countRule(start, 1)
		rule.Count = nil
		assert.ErrorIs(t, ValidateRecurrenceRule(rule, 52), ErrInvalidRecurrenceRule)
	})

	t.Run("end date before start date", func(t *testing.T) {
		err := ValidateRecurrenceRule(endDateRule(start, start.AddDate(0, 0, -1)), 52)
		assert.ErrorIs(t, err, ErrEndBeforeStart)
	})

	t.Run("missing end date", func(t *testing.T) {
		rule := endDateRule(start, start)
		rule.EndDate = nil
		assert.ErrorIs(t, ValidateRecurrenceRule(rule, 52), ErrInvalidRecurrenceRule)
	})

	t.Run("zero start date", func(t *testing.T) {
		rule := countRule(time.Time{}, 2)
		assert.ErrorIs(t, ValidateRecurrenceRule(rule, 52), ErrInvalidRecurrenceRule)
	})

	t.Run("invalid time of day", func(t *testing.T) {
		rule := countRule(start, 2)
		rule.TimeOfDay = types.TimeString("25:00")
		assert.ErrorIs(t, ValidateRecurrenceRule(rule, 52), ErrInvalidRecurrenceRule)
	})

	t.Run("unknown mode", func(t *testing.T) {
		rule := countRule(start, 2)
		rule.Mode = domain.RecurrenceMode("daily")
		assert.ErrorIs(t, ValidateRecurrenceRule(rule, 52), ErrInvalidRecurrenceRule)
	})
}

func TestExpandWeekly_CountMode(t *testing.T) {
	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник

	result, err := ExpandWeekly(countRule(start, 4), 52)
	require.NoError(t, err)
	require.Len(t, result.Dates, 4)
	assert.False(t, result.Truncated)

	// Шаг ровно 7 дней, время дня фиксировано
	for i, date := range result.Dates {
		expected := time.Date(2026, 3, 16+7*i, 10, 0, 0, 0, time.UTC)
		assert.Equal(t, expected, date, "occurrence %d", i)
		assert.Equal(t, time.Monday, date.Weekday())
	}
}

func TestExpandWeekly_CountModeTruncatedByCeiling(t *testing.T) {
	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	// Запрошено больше потолка: получаем ровно min(count, ceiling) дат и флаг усечения
	result, err := ExpandWeekly(countRule(start, 100), 52)
	require.NoError(t, err)
	assert.Len(t, result.Dates, 52)
	assert.True(t, result.Truncated)
}

func TestExpandWeekly_EndDateMode(t *testing.T) {
	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	t.Run("end date inclusive", func(t *testing.T) {
		// Конец периода попадает ровно на третье повторение
		end := start.AddDate(0, 0, 14)
		result, err := ExpandWeekly(endDateRule(start, end), 52)
		require.NoError(t, err)
		assert.Len(t, result.Dates, 3)
		assert.False(t, result.Truncated)
	})

	t.Run("end date between occurrences", func(t *testing.T) {
		end := start.AddDate(0, 0, 10)
		result, err := ExpandWeekly(endDateRule(start, end), 52)
		require.NoError(t, err)
		assert.Len(t, result.Dates, 2)
	})

	t.Run("end date equals start date", func(t *testing.T) {
		result, err := ExpandWeekly(endDateRule(start, start), 52)
		require.NoError(t, err)
		assert.Len(t, result.Dates, 1)
	})

	t.Run("ceiling applies in end date mode too", func(t *testing.T) {
		end := start.AddDate(2, 0, 0)
		result, err := ExpandWeekly(endDateRule(start, end), 52)
		require.NoError(t, err)
		assert.Len(t, result.Dates, 52)
		assert.True(t, result.Truncated)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := ExpandWeekly(endDateRule(start, start.AddDate(0, 0, -7)), 52)
		assert.ErrorIs(t, err, ErrEndBeforeStart)
	})
}

func TestExpandWeekly_DefaultCeiling(t *testing.T) {
	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	// Потолок <= 0 заменяется значением по умолчанию
	result, err := ExpandWeekly(countRule(start, 60), 0)
	require.NoError(t, err)
	assert.Len(t, result.Dates, domain.DefaultMaxRecurrenceOccurrences)
	assert.True(t, result.Truncated)
}
