package create_booking

import "errors"

var (
	// ErrWorkerNotFound возвращается, когда мастер не найден в салоне
	ErrWorkerNotFound = errors.New("create_booking: worker not found")

	// ErrWorkerInactive возвращается, когда мастер не принимает записи
	ErrWorkerInactive = errors.New("create_booking: worker is inactive")

	// ErrWorkerNotQualified возвращается, когда мастер не выполняет выбранную услугу
	ErrWorkerNotQualified = errors.New("create_booking: worker cannot perform this service")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается при нарушении минимального времени до начала записи
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrOutsideWorkingHours возвращается, когда запись не помещается в эффективное окно
	// (пересечение рабочих часов салона и личного окна мастера)
	ErrOutsideWorkingHours = errors.New("create_booking: outside working hours")

	// ErrBreakOverlap возвращается, когда сегмент услуги пересекает перерыв
	ErrBreakOverlap = errors.New("create_booking: service segment overlaps a break")

	// ErrSlotConflict возвращается, когда интервал занят другой записью
	ErrSlotConflict = errors.New("create_booking: time slot conflicts with another booking")

	// ErrNoEligibleWorker возвращается, когда ни один мастер не может выполнить
	// follow-up сегмент в вычисленное время
	ErrNoEligibleWorker = errors.New("create_booking: no eligible worker for follow-up segment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
