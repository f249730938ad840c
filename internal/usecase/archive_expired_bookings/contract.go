package archive_expired_bookings

import (
	"context"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetExpired(ctx context.Context, cutoff time.Time, limit uint64) ([]*domain.Booking, error)
	GetByParentID(ctx context.Context, parentID int64) (*domain.Booking, error)
	MarkArchived(ctx context.Context, ids []int64) error
}

// ArchiveRepository интерфейс репозитория архива
type ArchiveRepository interface {
	Upsert(ctx context.Context, record *domain.ArchiveRecord, replaceExisting bool) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
