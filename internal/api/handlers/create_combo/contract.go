package create_combo

import (
	"context"

	"github.com/mirelka/SLN-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateCombo(ctx context.Context, salonID int64, req *models.CreateComboRequest) (*models.ComboResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
