package set_combo_active

import (
	"context"

	"github.com/mirelka/SLN-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	SetComboActive(ctx context.Context, salonID, comboID int64, req *models.SetComboActiveRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
