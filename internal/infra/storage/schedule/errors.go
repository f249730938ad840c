package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание салона не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrMarshalDay возвращается при ошибке сериализации дневного расписания
	ErrMarshalDay = errors.New("schedule.repository: failed to marshal day schedule")
)
