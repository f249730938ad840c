package get_available_slots

import (
	"fmt"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, limits scheduling.Limits) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.WorkerID == "" {
		return fmt.Errorf("%w: workerID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.PrimaryDurationMinutes < limits.MinServiceDurationMinutes ||
		req.PrimaryDurationMinutes > limits.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: primary duration must be between %d and %d minutes",
			ErrInvalidInput, limits.MinServiceDurationMinutes, limits.MaxServiceDurationMinutes)
	}

	if req.WaitMinutes < 0 || req.WaitMinutes > limits.MaxWaitMinutes {
		return fmt.Errorf("%w: wait must be between 0 and %d minutes", ErrInvalidInput, limits.MaxWaitMinutes)
	}

	if req.FollowUpDurationMinutes != 0 {
		if req.FollowUpDurationMinutes < limits.MinServiceDurationMinutes ||
			req.FollowUpDurationMinutes > limits.MaxServiceDurationMinutes {
			return fmt.Errorf("%w: follow-up duration must be between %d and %d minutes",
				ErrInvalidInput, limits.MinServiceDurationMinutes, limits.MaxServiceDurationMinutes)
		}
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
