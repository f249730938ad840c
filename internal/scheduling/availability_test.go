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

func testBooking(id int64, start types.TimeString, durationMin int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		WorkerID:        "w-001",
		BookingDate:     time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		DurationMinutes: durationMin,
		Status:          status,
	}
}

func TestHasConflict(t *testing.T) {
	existing := []*domain.Booking{
		testBooking(1, "10:00", 60, domain.StatusConfirmed),
	}

	t.Run("overlapping candidate conflicts and names the booking", func(t *testing.T) {
		// Окно мастера 09:00-17:00, запись 10:00-11:00, кандидат 10:30-11:30
		check := HasConflict(630, 690, existing, nil)
		require.True(t, check.HasConflict)
		require.NotNil(t, check.Conflicting)
		assert.Equal(t, int64(1), check.Conflicting.ID)
	})

	t.Run("conflict is symmetric", func(t *testing.T) {
		a := testBooking(1, "10:00", 60, domain.StatusConfirmed)
		b := testBooking(2, "10:30", 60, domain.StatusConfirmed)

		aStart, aEnd, err := a.SegmentMinutes()
		require.NoError(t, err)
		bStart, bEnd, err := b.SegmentMinutes()
		require.NoError(t, err)

		assert.Equal(t,
			HasConflict(aStart, aEnd, []*domain.Booking{b}, nil).HasConflict,
			HasConflict(bStart, bEnd, []*domain.Booking{a}, nil).HasConflict,
		)
	})

	t.Run("back-to-back is not a conflict", func(t *testing.T) {
		// Кандидат кончается ровно в начале существующей записи
		check := HasConflict(540, 600, existing, nil)
		assert.False(t, check.HasConflict)

		// И начинается ровно в её конце
		check = HasConflict(660, 720, existing, nil)
		assert.False(t, check.HasConflict)
	})

	t.Run("cancelled bookings do not occupy time", func(t *testing.T) {
		cancelled := []*domain.Booking{
			testBooking(1, "10:00", 60, domain.StatusCancelled),
		}
		check := HasConflict(630, 690, cancelled, nil)
		assert.False(t, check.HasConflict)
	})

	t.Run("excluded ids are ignored when editing", func(t *testing.T) {
		check := HasConflict(630, 690, existing, []int64{1})
		assert.False(t, check.HasConflict)
	})

	t.Run("booking with broken start time is skipped", func(t *testing.T) {
		broken := []*domain.Booking{
			testBooking(1, "garbage", 60, domain.StatusConfirmed),
		}
		check := HasConflict(630, 690, broken, nil)
		assert.False(t, check.HasConflict)
	})
}

func weeklyNineToFive() domain.WeeklySchedule {
	day := domain.DaySchedule{
		Enabled:   true,
		OpenTime:  ptr.Ptr(types.TimeString("09:00")),
		CloseTime: ptr.Ptr(types.TimeString("17:00")),
	}
	return domain.WeeklySchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
	}
}

func TestDayWindow(t *testing.T) {
	schedule := weeklyNineToFive()

	t.Run("open weekday", func(t *testing.T) {
		// 2026-03-16 — понедельник
		window, err := DayWindow(&schedule, "2026-03-16")
		require.NoError(t, err)
		require.NotNil(t, window)
		assert.Equal(t, Span{StartMin: 540, EndMin: 1020}, *window)
	})

	t.Run("closed weekday is nil", func(t *testing.T) {
		// 2026-03-22 — воскресенье
		window, err := DayWindow(&schedule, "2026-03-22")
		require.NoError(t, err)
		assert.Nil(t, window)
	})

	t.Run("missing schedule means unavailable", func(t *testing.T) {
		window, err := DayWindow(nil, "2026-03-16")
		require.NoError(t, err)
		assert.Nil(t, window)
	})

	t.Run("partial day data means unavailable", func(t *testing.T) {
		partial := domain.WeeklySchedule{
			Monday: domain.DaySchedule{Enabled: true, OpenTime: ptr.Ptr(types.TimeString("09:00"))},
		}
		window, err := DayWindow(&partial, "2026-03-16")
		require.NoError(t, err)
		assert.Nil(t, window)
	})

	t.Run("invalid day key", func(t *testing.T) {
		_, err := DayWindow(&schedule, "16/03/2026")
		require.ErrorIs(t, err, ErrInvalidDayKey)
	})
}

func TestEffectiveWindow(t *testing.T) {
	worker := &Span{StartMin: 600, EndMin: 960}    // 10:00-16:00
	business := &Span{StartMin: 540, EndMin: 1080} // 09:00-18:00

	t.Run("intersection of both windows", func(t *testing.T) {
		got := EffectiveWindow(worker, business)
		require.NotNil(t, got)
		assert.Equal(t, Span{StartMin: 600, EndMin: 960}, *got)
	})

	t.Run("disjoint windows yield nil", func(t *testing.T) {
		late := &Span{StartMin: 1100, EndMin: 1200}
		assert.Nil(t, EffectiveWindow(late, business))
	})

	t.Run("single window acts alone", func(t *testing.T) {
		got := EffectiveWindow(nil, business)
		require.NotNil(t, got)
		assert.Equal(t, *business, *got)
	})

	t.Run("no windows yield nil", func(t *testing.T) {
		assert.Nil(t, EffectiveWindow(nil, nil))
	})
}

func TestIsWithinWindow(t *testing.T) {
	worker := &Span{StartMin: 600, EndMin: 960}
	business := &Span{StartMin: 540, EndMin: 1080}

	assert.True(t, IsWithinWindow(600, 660, worker, business))
	assert.True(t, IsWithinWindow(900, 960, worker, business))
	// Внутри окна салона, но до начала окна мастера
	assert.False(t, IsWithinWindow(540, 600, worker, business))
	// Выходит за окно мастера
	assert.False(t, IsWithinWindow(930, 990, worker, business))
	// Вырожденный интервал
	assert.False(t, IsWithinWindow(600, 600, worker, business))
}

func TestCountBusyIntervals(t *testing.T) {
	bookings := []*domain.Booking{
		testBooking(1, "10:00", 60, domain.StatusConfirmed),
		testBooking(2, "12:00", 30, domain.StatusBooked),
		testBooking(3, "14:00", 30, domain.StatusCancelled),
		testBooking(4, "bad", 30, domain.StatusConfirmed),
	}
	assert.Equal(t, 2, CountBusyIntervals(bookings))
}
