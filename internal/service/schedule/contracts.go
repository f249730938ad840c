package schedule

import (
	"context"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочих часов салонов
type ScheduleRepository interface {
	GetBySalonID(ctx context.Context, salonID int64) (*domain.WeeklySchedule, error)
	Upsert(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	Delete(ctx context.Context, salonID int64) error
}

// ComboRepository интерфейс репозитория правил комбо
type ComboRepository interface {
	GetActiveBySalonID(ctx context.Context, salonID int64) ([]*domain.Combo, error)
	Create(ctx context.Context, combo *domain.Combo) (*domain.Combo, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*domain.Salon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
