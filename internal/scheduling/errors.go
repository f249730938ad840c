package scheduling

import "errors"

var (
	// ErrInvalidDayKey возвращается при некорректном ключе дня (ожидается YYYY-MM-DD)
	ErrInvalidDayKey = errors.New("scheduling: invalid day key")

	// ErrInvalidInterval возвращается, когда начало интервала не раньше его конца
	ErrInvalidInterval = errors.New("scheduling: interval start must be before end")

	// ErrInvalidBreak возвращается при некорректном перерыве
	// (начало не раньше конца или перерыв вне рабочего окна)
	ErrInvalidBreak = errors.New("scheduling: invalid break range")

	// ErrInvalidDuration возвращается при отрицательной или нулевой длительности там,
	// где она обязана быть положительной
	ErrInvalidDuration = errors.New("scheduling: invalid duration")

	// ErrInvalidRecurrenceRule возвращается при структурно некорректном правиле повторения
	ErrInvalidRecurrenceRule = errors.New("scheduling: invalid recurrence rule")

	// ErrEndBeforeStart возвращается, когда дата окончания повторения раньше даты начала
	ErrEndBeforeStart = errors.New("scheduling: recurrence end date is before start date")

	// ErrTooManyOccurrences возвращается, когда запрошенное число повторений превышает потолок
	ErrTooManyOccurrences = errors.New("scheduling: occurrence count exceeds the ceiling")
)
