package archive_expired_bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	bookingRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/booking"
	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
)

// defaultBatchSize максимум записей за один проход архивации
const defaultBatchSize = 500

// UseCase use case фоновой архивации истёкших записей
type UseCase struct {
	bookingRepo      BookingRepository
	archiveRepo      ArchiveRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
	archiveAfterDays int
	batchSize        uint64
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	archiveRepository ArchiveRepository,
	txManager TransactionManager,
	logger Logger,
	archiveAfterDays int,
) *UseCase {
	if archiveAfterDays <= 0 {
		archiveAfterDays = domain.DefaultArchiveAfterDays
	}
	return &UseCase{
		bookingRepo:      bookingRepository,
		archiveRepo:      archiveRepository,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		archiveAfterDays: archiveAfterDays,
		batchSize:        defaultBatchSize,
	}
}

// Execute выполняет один проход архивации
// Для каждой истёкшей записи строится ключ замещения: пара (клиент, тип услуги)
// держит в архиве не более одной строки, новая запись замещает предыдущую.
// Записи с неопознанной услугой получают уникальный ключ и никого не замещают.
// Каждая запись архивируется в собственной транзакции: провал одной не
// останавливает проход
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -uc.archiveAfterDays)

	uc.logger.Info("ArchiveExpiredBookings: sweep started, cutoff=%s", cutoff.Format(domain.DateFormat))

	expired, err := uc.bookingRepo.GetExpired(ctx, cutoff, uc.batchSize)
	if err != nil {
		uc.logger.Error("ArchiveExpiredBookings: failed to get expired bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get expired bookings: %v", ErrInternal, err)
	}

	response := &Response{Scanned: len(expired)}

	for _, booking := range expired {
		if err := uc.archiveOne(ctx, booking); err != nil {
			uc.logger.Error("ArchiveExpiredBookings: failed to archive booking id=%d: %v", booking.ID, err)
			response.Failed++
			continue
		}
		response.Archived++
	}

	uc.logger.Info("ArchiveExpiredBookings: sweep done, scanned=%d, archived=%d, failed=%d",
		response.Scanned, response.Archived, response.Failed)

	return response, nil
}

// archiveOne архивирует одну запись вместе с её follow-up сегментом
func (uc *UseCase) archiveOne(ctx context.Context, booking *domain.Booking) error {
	key := scheduling.ArchiveKeyForBooking(booking)
	record := archiveRecord(booking, key)

	return uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.archiveRepo.Upsert(txCtx, record, key.ReplaceExisting); err != nil {
			return fmt.Errorf("upsert archive record: %w", err)
		}

		ids := []int64{booking.ID}
		child, err := uc.bookingRepo.GetByParentID(txCtx, booking.ID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("get follow-up segment: %w", err)
		}
		if child != nil {
			ids = append(ids, child.ID)
		}

		if err := uc.bookingRepo.MarkArchived(txCtx, ids); err != nil {
			return fmt.Errorf("mark archived: %w", err)
		}
		return nil
	})
}

// archiveRecord строит архивный снэпшот бронирования
func archiveRecord(booking *domain.Booking, key scheduling.ArchiveKey) *domain.ArchiveRecord {
	phone := ""
	if booking.ClientPhone != nil {
		phone = *booking.ClientPhone
	}

	clientKey := scheduling.ClientKey(&booking.ClientID, phone)
	if booking.ClientID <= 0 {
		clientKey = scheduling.ClientKey(nil, phone)
	}

	return &domain.ArchiveRecord{
		ArchiveKey:     key.Key,
		ClientKey:      clientKey,
		ServiceTypeKey: scheduling.ServiceTypeKey(booking.ServiceRef()),
		BookingID:      booking.ID,
		SalonID:        booking.SalonID,
		WorkerID:       booking.WorkerID,
		ClientName:     booking.ClientName,
		ClientPhone:    booking.ClientPhone,
		ServiceName:    booking.ServiceName,
		BookingDate:    booking.BookingDate,
	}
}
