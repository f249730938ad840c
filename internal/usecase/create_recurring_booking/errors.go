package create_recurring_booking

import "errors"

var (
	// ErrInvalidRule возвращается при некорректном правиле повторения
	ErrInvalidRule = errors.New("create_recurring_booking: invalid recurrence rule")

	// ErrTooManyOccurrences возвращается, когда запрошено больше повторений,
	// чем допускает потолок
	ErrTooManyOccurrences = errors.New("create_recurring_booking: too many occurrences requested")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_recurring_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_recurring_booking: internal error")
)
