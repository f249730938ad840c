package get_available_slots

import (
	"context"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория рабочих часов салонов
type ScheduleRepository interface {
	GetBySalonID(ctx context.Context, salonID int64) (*domain.WeeklySchedule, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetWorker(ctx context.Context, salonID int64, workerID string) (*domain.Worker, error)
	GetWorkers(ctx context.Context, salonID int64) ([]*domain.Worker, error)
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
