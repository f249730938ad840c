package create_booking

import (
	"context"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/internal/integrations/clientservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория рабочих часов салонов
type ScheduleRepository interface {
	GetBySalonID(ctx context.Context, salonID int64) (*domain.WeeklySchedule, error)
}

// ComboRepository интерфейс репозитория правил комбо
type ComboRepository interface {
	GetActiveBySalonID(ctx context.Context, salonID int64) ([]*domain.Combo, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetWorker(ctx context.Context, salonID int64, workerID string) (*domain.Worker, error)
	GetWorkers(ctx context.Context, salonID int64) ([]*domain.Worker, error)
}

// ClientServiceClient интерфейс клиента для ClientService
type ClientServiceClient interface {
	GetClientWithGracefulDegradation(ctx context.Context, clientID int64) (*clientservice.ClientProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
