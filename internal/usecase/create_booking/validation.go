package create_booking

import (
	"fmt"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса с учетом предельных значений
func validateRequest(req *Request, limits scheduling.Limits) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.WorkerID == "" {
		return fmt.Errorf("%w: workerID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.ServiceTypeIDs) == 0 && req.ServiceName == "" {
		return fmt.Errorf("%w: at least one service type or a service name is required", ErrInvalidInput)
	}
	for _, id := range req.ServiceTypeIDs {
		if id <= 0 {
			return fmt.Errorf("%w: service type ids must be positive", ErrInvalidInput)
		}
	}

	if req.PrimaryDurationMinutes < limits.MinServiceDurationMinutes ||
		req.PrimaryDurationMinutes > limits.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: primary duration must be between %d and %d minutes",
			ErrInvalidInput, limits.MinServiceDurationMinutes, limits.MaxServiceDurationMinutes)
	}

	if req.WaitMinutes < 0 || req.WaitMinutes > limits.MaxWaitMinutes {
		return fmt.Errorf("%w: wait must be between 0 and %d minutes", ErrInvalidInput, limits.MaxWaitMinutes)
	}

	// Follow-up либо отсутствует, либо подчиняется тем же границам, что и основной сегмент
	if req.FollowUpDurationMinutes != 0 {
		if req.FollowUpDurationMinutes < limits.MinServiceDurationMinutes ||
			req.FollowUpDurationMinutes > limits.MaxServiceDurationMinutes {
			return fmt.Errorf("%w: follow-up duration must be between %d and %d minutes",
				ErrInvalidInput, limits.MinServiceDurationMinutes, limits.MaxServiceDurationMinutes)
		}
	}

	return nil
}

// validateDate проверяет, что дата записи не в прошлом
func validateDate(bookingDate, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateBookingNotice проверяет минимальное время до начала записи
// Действует только для записей на сегодня
func validateBookingNotice(bookingDate time.Time, startTime types.TimeString, now time.Time, noticeMinutes int) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(noticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, noticeMinutes)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// startInstant собирает момент начала записи из даты и времени дня
func startInstant(date time.Time, startTime types.TimeString) (time.Time, error) {
	minutes, err := startTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(minutes) * time.Minute), nil
}
