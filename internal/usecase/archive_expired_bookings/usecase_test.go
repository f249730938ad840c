package archive_expired_bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	bookingRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/booking"
	"github.com/mirelka/SLN-SchedulingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	expired     []*domain.Booking
	children    map[int64]*domain.Booking
	archivedIDs [][]int64
	markFailFor int64
	gotCutoff   time.Time
}

func (f *fakeBookingRepo) GetExpired(_ context.Context, cutoff time.Time, _ uint64) ([]*domain.Booking, error) {
	f.gotCutoff = cutoff
	return f.expired, nil
}

func (f *fakeBookingRepo) GetByParentID(_ context.Context, parentID int64) (*domain.Booking, error) {
	if child, ok := f.children[parentID]; ok {
		return child, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) MarkArchived(_ context.Context, ids []int64) error {
	if f.markFailFor != 0 {
		for _, id := range ids {
			if id == f.markFailFor {
				return errors.New("mark archived failed")
			}
		}
	}
	f.archivedIDs = append(f.archivedIDs, ids)
	return nil
}

type upsertCall struct {
	record          *domain.ArchiveRecord
	replaceExisting bool
}

type fakeArchiveRepo struct {
	calls []upsertCall
}

func (f *fakeArchiveRepo) Upsert(_ context.Context, record *domain.ArchiveRecord, replaceExisting bool) error {
	f.calls = append(f.calls, upsertCall{record: record, replaceExisting: replaceExisting})
	return nil
}

func expiredBooking(id int64, serviceTypeID *int64, serviceName string) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		SalonID:       5,
		ClientID:      42,
		WorkerID:      "w-9",
		BookingDate:   time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		Phase:         domain.PhasePrimary,
		Status:        domain.StatusBooked,
		ServiceTypeID: serviceTypeID,
		ServiceName:   serviceName,
	}
}

func TestArchiveSweep(t *testing.T) {
	t.Run("archives booking together with follow-up segment", func(t *testing.T) {
		repo := &fakeBookingRepo{
			expired: []*domain.Booking{expiredBooking(100, ptr.Ptr(int64(7)), "Стрижка")},
			children: map[int64]*domain.Booking{
				100: {ID: 101, Phase: domain.PhaseFollowUp, ParentBookingID: ptr.Ptr(int64(100))},
			},
		}
		archive := &fakeArchiveRepo{}
		uc := NewUseCase(repo, archive, fakeTxManager{}, nopLogger{}, 90)

		resp, err := uc.Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Scanned)
		assert.Equal(t, 1, resp.Archived)
		assert.Equal(t, 0, resp.Failed)

		require.Len(t, archive.calls, 1)
		call := archive.calls[0]
		assert.True(t, call.replaceExisting)
		assert.Equal(t, "42|id:7", call.record.ArchiveKey)
		assert.Equal(t, int64(100), call.record.BookingID)

		require.Len(t, repo.archivedIDs, 1)
		assert.Equal(t, []int64{100, 101}, repo.archivedIDs[0])
	})

	t.Run("unknown service key never replaces", func(t *testing.T) {
		repo := &fakeBookingRepo{
			expired: []*domain.Booking{expiredBooking(200, nil, "")},
		}
		archive := &fakeArchiveRepo{}
		uc := NewUseCase(repo, archive, fakeTxManager{}, nopLogger{}, 90)

		resp, err := uc.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Archived)

		require.Len(t, archive.calls, 1)
		call := archive.calls[0]
		assert.False(t, call.replaceExisting)
		assert.Equal(t, "42|unknown|200", call.record.ArchiveKey)
	})

	t.Run("one failed booking does not stop the sweep", func(t *testing.T) {
		repo := &fakeBookingRepo{
			expired: []*domain.Booking{
				expiredBooking(300, ptr.Ptr(int64(7)), "Стрижка"),
				expiredBooking(301, ptr.Ptr(int64(8)), "Маникюр"),
			},
			markFailFor: 300,
		}
		archive := &fakeArchiveRepo{}
		uc := NewUseCase(repo, archive, fakeTxManager{}, nopLogger{}, 90)

		resp, err := uc.Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Scanned)
		assert.Equal(t, 1, resp.Archived)
		assert.Equal(t, 1, resp.Failed)

		require.Len(t, repo.archivedIDs, 1)
		assert.Equal(t, []int64{301}, repo.archivedIDs[0])
	})

	t.Run("cutoff respects retention period", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		uc := NewUseCase(repo, &fakeArchiveRepo{}, fakeTxManager{}, nopLogger{}, 30)
		uc.timeProvider = fixedTime{now: time.Date(2026, 8, 31, 15, 45, 0, 0, time.UTC)}

		_, err := uc.Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), repo.gotCutoff)
	})
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}
