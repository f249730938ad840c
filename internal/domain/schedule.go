package domain

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// BreakRange перерыв внутри рабочего дня (например, обед)
// Start должен быть строго раньше End, оба внутри рабочих часов дня
type BreakRange struct {
	Start types.TimeString
	End   types.TimeString
}

// DaySchedule расписание салона на один день недели
type DaySchedule struct {
	Enabled   bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
	Breaks    []BreakRange
}

// IsBookable возвращает true, если в этот день в принципе можно бронировать
func (d *DaySchedule) IsBookable() bool {
	return d.Enabled && d.OpenTime != nil && d.CloseTime != nil
}

// WeeklySchedule рабочие часы салона по дням недели
type WeeklySchedule struct {
	ID        int64
	SalonID   int64
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ForWeekday возвращает расписание на указанный день недели
func (w *WeeklySchedule) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{Enabled: false}
	}
}

// SetForWeekday заменяет расписание на указанный день недели
func (w *WeeklySchedule) SetForWeekday(weekday time.Weekday, day DaySchedule) {
	switch weekday {
	case time.Monday:
		w.Monday = day
	case time.Tuesday:
		w.Tuesday = day
	case time.Wednesday:
		w.Wednesday = day
	case time.Thursday:
		w.Thursday = day
	case time.Friday:
		w.Friday = day
	case time.Saturday:
		w.Saturday = day
	case time.Sunday:
		w.Sunday = day
	}
}
