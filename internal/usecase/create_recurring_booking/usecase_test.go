package create_recurring_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
	"github.com/mirelka/SLN-SchedulingService/internal/usecase/create_booking"
	"github.com/mirelka/SLN-SchedulingService/pkg/ptr"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeCreator создает записи с возрастающими ID и проваливает даты из failDates
type fakeCreator struct {
	nextID    int64
	failDates map[string]error
	requests  []*create_booking.Request
}

func (f *fakeCreator) Execute(_ context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	f.requests = append(f.requests, req)
	if err, ok := f.failDates[req.Date.Format(domain.DateFormat)]; ok {
		return nil, err
	}
	f.nextID++
	return &create_booking.Response{BookingID: f.nextID}, nil
}

func seriesRequest(start time.Time, count int) *Request {
	return &Request{
		SalonID:  10,
		ClientID: 77,
		WorkerID: "w-1",
		Rule: domain.RecurrenceRule{
			StartDate: start,
			TimeOfDay: types.TimeString("12:30"),
			Mode:      domain.RecurrenceByCount,
			Count:     ptr.Ptr(count),
		},
		ServiceTypeIDs:         []int64{3},
		ServiceName:            "Окрашивание",
		PrimaryDurationMinutes: 60,
	}
}

func TestCreateRecurringSeries(t *testing.T) {
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("all occurrences succeed", func(t *testing.T) {
		creator := &fakeCreator{}
		uc := NewUseCase(creator, nopLogger{}, scheduling.Limits{})

		resp, err := uc.Execute(context.Background(), seriesRequest(start, 3))
		require.NoError(t, err)

		assert.Equal(t, 3, resp.Requested)
		assert.Equal(t, 3, resp.Succeeded)
		assert.Equal(t, 0, resp.Failed)
		assert.False(t, resp.Truncated)

		require.Len(t, resp.Results, 3)
		timeOfDay := 12*time.Hour + 30*time.Minute
		for i, result := range resp.Results {
			assert.Equal(t, start.AddDate(0, 0, 7*i).Add(timeOfDay), result.Date)
			require.NotNil(t, result.BookingID)
			assert.Empty(t, result.Error)
		}

		// Каждое повторение наследует время и параметры серии
		require.Len(t, creator.requests, 3)
		for _, req := range creator.requests {
			assert.Equal(t, types.TimeString("12:30"), req.StartTime)
			assert.Equal(t, int64(10), req.SalonID)
			assert.Equal(t, 60, req.PrimaryDurationMinutes)
		}
	})

	t.Run("failed occurrence does not stop the series", func(t *testing.T) {
		second := start.AddDate(0, 0, 7)
		creator := &fakeCreator{
			failDates: map[string]error{
				second.Format(domain.DateFormat): create_booking.ErrSlotConflict,
			},
		}
		uc := NewUseCase(creator, nopLogger{}, scheduling.Limits{})

		resp, err := uc.Execute(context.Background(), seriesRequest(start, 3))
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Succeeded)
		assert.Equal(t, 1, resp.Failed)

		require.Len(t, resp.Results, 3)
		assert.NotNil(t, resp.Results[0].BookingID)
		assert.Nil(t, resp.Results[1].BookingID)
		assert.NotEmpty(t, resp.Results[1].Error)
		assert.NotNil(t, resp.Results[2].BookingID)
	})

	t.Run("count above ceiling is rejected before creation", func(t *testing.T) {
		creator := &fakeCreator{}
		uc := NewUseCase(creator, nopLogger{}, scheduling.Limits{MaxRecurrenceOccurrences: 4})

		_, err := uc.Execute(context.Background(), seriesRequest(start, 5))
		assert.ErrorIs(t, err, ErrTooManyOccurrences)
		assert.Empty(t, creator.requests)
	})

	t.Run("invalid rule is rejected", func(t *testing.T) {
		creator := &fakeCreator{}
		uc := NewUseCase(creator, nopLogger{}, scheduling.Limits{})

		req := seriesRequest(start, 1)
		req.Rule.Count = nil

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRule)
		assert.Empty(t, creator.requests)
	})

	t.Run("end date series is truncated at ceiling", func(t *testing.T) {
		creator := &fakeCreator{}
		uc := NewUseCase(creator, nopLogger{}, scheduling.Limits{MaxRecurrenceOccurrences: 2})

		req := seriesRequest(start, 1)
		req.Rule.Mode = domain.RecurrenceByEndDate
		req.Rule.Count = nil
		end := start.AddDate(0, 0, 28)
		req.Rule.EndDate = &end

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.True(t, resp.Truncated)
		assert.Equal(t, 2, resp.Requested)
		assert.Len(t, creator.requests, 2)
	})

	t.Run("series fails when creator reports internal error", func(t *testing.T) {
		internalErr := errors.New("storage down")
		creator := &fakeCreator{
			failDates: map[string]error{
				start.Format(domain.DateFormat): internalErr,
			},
		}
		uc := NewUseCase(creator, nopLogger{}, scheduling.Limits{})

		resp, err := uc.Execute(context.Background(), seriesRequest(start, 1))
		require.NoError(t, err)

		assert.Equal(t, 0, resp.Succeeded)
		assert.Equal(t, 1, resp.Failed)
		assert.Equal(t, "storage down", resp.Results[0].Error)
	})
}
