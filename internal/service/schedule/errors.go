package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание салона не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrComboNotFound возвращается, когда правило комбо не найдено
	ErrComboNotFound = errors.New("combo not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidSchedule возвращается при нарушении инвариантов расписания:
	// открытие не раньше закрытия, перерыв вне рабочего окна
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidCombo возвращается при нарушении инвариантов правила комбо
	ErrInvalidCombo = errors.New("invalid combo")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
