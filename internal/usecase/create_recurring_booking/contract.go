package create_recurring_booking

import (
	"context"

	"github.com/mirelka/SLN-SchedulingService/internal/usecase/create_booking"
)

// BookingCreator интерфейс usecase создания одиночной записи
// Каждое повторение создается отдельным вызовом в собственной транзакции
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
