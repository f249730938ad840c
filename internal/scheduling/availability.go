package scheduling

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// ConflictCheck результат проверки пересечения с существующими бронированиями
type ConflictCheck struct {
	HasConflict bool
	Conflicting *domain.Booking
}

// HasConflict проверяет, пересекается ли кандидат [startMin, endMin) с каким-либо
// активным бронированием мастера на этот день.
// excludeIDs — бронирования, которые нужно игнорировать (редактируемая запись
// и её сегменты). Отменённые записи время не занимают.
// Пересечение — по тем же строгим неравенствам, что и для перерывов:
// бронирования вплотную друг к другу конфликтом не считаются.
func HasConflict(startMin, endMin int, dayBookings []*domain.Booking, excludeIDs []int64) ConflictCheck {
	candidate := Span{StartMin: startMin, EndMin: endMin}
	if candidate.IsEmpty() {
		return ConflictCheck{}
	}

	excluded := make(map[int64]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	for _, booking := range dayBookings {
		if _, skip := excluded[booking.ID]; skip {
			continue
		}
		if !booking.IsActive() {
			continue
		}

		bStart, bEnd, err := booking.SegmentMinutes()
		if err != nil {
			// Некорректное время в исторической записи — пропускаем, не падаем
			continue
		}

		if candidate.Overlaps(Span{StartMin: bStart, EndMin: bEnd}) {
			return ConflictCheck{HasConflict: true, Conflicting: booking}
		}
	}

	return ConflictCheck{}
}

// CountBusyIntervals возвращает количество активных занятых интервалов мастера за день
// Используется при детерминированном выборе мастера для follow-up
func CountBusyIntervals(dayBookings []*domain.Booking) int {
	count := 0
	for _, booking := range dayBookings {
		if !booking.IsActive() {
			continue
		}
		if _, _, err := booking.SegmentMinutes(); err != nil {
			continue
		}
		count++
	}
	return count
}

// DayWindow возвращает рабочее окно расписания на день dayKey в минутах от полуночи
// nil означает «в этот день недоступен». Отсутствующие или некорректные данные
// трактуются как недоступность, а не как «открыто весь день».
func DayWindow(schedule *domain.WeeklySchedule, dayKey string) (*Span, error) {
	day, err := time.Parse(domain.DateFormat, dayKey)
	if err != nil {
		return nil, ErrInvalidDayKey
	}
	if schedule == nil {
		return nil, nil
	}

	daySchedule := schedule.ForWeekday(day.Weekday())
	if !daySchedule.IsBookable() {
		return nil, nil
	}

	openMin, err := daySchedule.OpenTime.Minutes()
	if err != nil {
		return nil, nil
	}
	closeMin, err := daySchedule.CloseTime.Minutes()
	if err != nil {
		return nil, nil
	}
	if openMin >= closeMin {
		return nil, nil
	}

	return &Span{StartMin: openMin, EndMin: closeMin}, nil
}

// WorkerWindowFor возвращает персональное рабочее окно мастера на день dayKey
// nil означает «мастер в этот день недоступен»
func WorkerWindowFor(worker *domain.Worker, dayKey string) (*Span, error) {
	if worker == nil {
		return nil, nil
	}
	return DayWindow(&worker.Availability, dayKey)
}

// DayBreaks возвращает перерывы расписания на день dayKey в минутах от полуночи
// Перерывы с некорректным временем пропускаются
func DayBreaks(schedule *domain.WeeklySchedule, dayKey string) ([]Span, error) {
	day, err := time.Parse(domain.DateFormat, dayKey)
	if err != nil {
		return nil, ErrInvalidDayKey
	}
	if schedule == nil {
		return nil, nil
	}

	daySchedule := schedule.ForWeekday(day.Weekday())

	var breaks []Span
	for _, br := range daySchedule.Breaks {
		startMin, err := br.Start.Minutes()
		if err != nil {
			continue
		}
		endMin, err := br.End.Minutes()
		if err != nil {
			continue
		}
		breaks = append(breaks, Span{StartMin: startMin, EndMin: endMin})
	}
	return breaks, nil
}

// EffectiveWindow возвращает пересечение окна мастера и окна салона
// Если задано только одно окно, действует оно. Если ни одного — nil (недоступен).
// Пустое пересечение также даёт nil.
func EffectiveWindow(workerWindow, businessWindow *Span) *Span {
	if workerWindow == nil && businessWindow == nil {
		return nil
	}
	if workerWindow == nil {
		w := *businessWindow
		return &w
	}
	if businessWindow == nil {
		w := *workerWindow
		return &w
	}

	intersection := Span{
		StartMin: max(workerWindow.StartMin, businessWindow.StartMin),
		EndMin:   min(workerWindow.EndMin, businessWindow.EndMin),
	}
	if intersection.IsEmpty() {
		return nil
	}
	return &intersection
}

// IsWithinWindow проверяет, что кандидат целиком помещается в эффективное окно
// (пересечение окна мастера и окна салона)
func IsWithinWindow(startMin, endMin int, workerWindow, businessWindow *Span) bool {
	window := EffectiveWindow(workerWindow, businessWindow)
	if window == nil {
		return false
	}
	if endMin <= startMin {
		return false
	}
	return startMin >= window.StartMin && endMin <= window.EndMin
}
