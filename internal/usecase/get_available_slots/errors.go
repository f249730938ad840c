package get_available_slots

import "errors"

var (
	// ErrWorkerNotFound возвращается, когда мастер не найден в салоне
	ErrWorkerNotFound = errors.New("get_available_slots: worker not found")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
