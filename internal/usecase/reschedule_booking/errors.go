package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается при отсутствии прав на перенос
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается, когда статус записи не допускает перенос
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrSegmentNotFound возвращается, когда у записи нет запрошенного сегмента
	ErrSegmentNotFound = errors.New("reschedule_booking: segment not found")

	// ErrInvalidDate возвращается при попытке переноса на прошедшую дату
	ErrInvalidDate = errors.New("reschedule_booking: booking date cannot be in the past")

	// ErrTooLateToBook возвращается при нарушении минимального времени до начала
	ErrTooLateToBook = errors.New("reschedule_booking: too late to reschedule for this time")

	// ErrOutsideWorkingHours возвращается, когда новый интервал вне рабочего окна
	ErrOutsideWorkingHours = errors.New("reschedule_booking: requested time is outside working hours")

	// ErrBreakOverlap возвращается, когда новый интервал пересекает перерыв
	ErrBreakOverlap = errors.New("reschedule_booking: requested time overlaps a break")

	// ErrSlotConflict возвращается при пересечении с другой записью мастера
	ErrSlotConflict = errors.New("reschedule_booking: requested time conflicts with another booking")

	// ErrSegmentOrderViolation возвращается, когда перенос ломает порядок фаз:
	// follow-up сегмент должен начинаться не раньше конца основного
	ErrSegmentOrderViolation = errors.New("reschedule_booking: follow-up segment must start after the primary segment ends")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
