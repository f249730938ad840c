package scheduling

import "github.com/mirelka/SLN-SchedulingService/internal/domain"

// Limits предельные значения движка расписания
// Передаются явно в use cases вместо глобальных констант, чтобы тесты могли
// проверять граничные значения без подмены глобального состояния
type Limits struct {
	SlotGranularityMinutes    int
	MaxRecurrenceOccurrences  int
	MinServiceDurationMinutes int
	MaxServiceDurationMinutes int
	MaxWaitMinutes            int
}

// DefaultLimits возвращает предельные значения по умолчанию
func DefaultLimits() Limits {
	return Limits{
		SlotGranularityMinutes:    domain.DefaultSlotGranularityMinutes,
		MaxRecurrenceOccurrences:  domain.DefaultMaxRecurrenceOccurrences,
		MinServiceDurationMinutes: domain.MinServiceDurationMinutes,
		MaxServiceDurationMinutes: domain.MaxServiceDurationMinutes,
		MaxWaitMinutes:            domain.MaxWaitMinutes,
	}
}

// Normalized возвращает копию с заполненными дефолтами вместо нулевых значений
func (l Limits) Normalized() Limits {
	def := DefaultLimits()
	if l.SlotGranularityMinutes <= 0 {
		l.SlotGranularityMinutes = def.SlotGranularityMinutes
	}
	if l.MaxRecurrenceOccurrences <= 0 {
		l.MaxRecurrenceOccurrences = def.MaxRecurrenceOccurrences
	}
	if l.MinServiceDurationMinutes <= 0 {
		l.MinServiceDurationMinutes = def.MinServiceDurationMinutes
	}
	if l.MaxServiceDurationMinutes <= 0 {
		l.MaxServiceDurationMinutes = def.MaxServiceDurationMinutes
	}
	if l.MaxWaitMinutes <= 0 {
		l.MaxWaitMinutes = def.MaxWaitMinutes
	}
	return l
}
