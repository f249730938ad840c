package staffservice

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден в StaffService
	ErrSalonNotFound = errors.New("salon not found")

	// ErrWorkerNotFound возвращается, когда мастер не найден в StaffService
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что StaffService недоступен и персональные окна мастеров
	// применить нельзя
	ErrServiceDegraded = errors.New("staffservice unavailable: graceful degradation applied")
)
