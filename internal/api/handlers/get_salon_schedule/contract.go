package get_salon_schedule

import (
	"context"

	"github.com/mirelka/SLN-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSalonSchedule(ctx context.Context, salonID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
