package scheduling

import (
	"fmt"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// ExpandResult результат развёртывания еженедельного правила
// Truncated = true, если потолок не дал развернуть правило целиком —
// вызывающий обязан сообщить об этом, а не молча отдать усечённый список
type ExpandResult struct {
	Dates     []time.Time
	Truncated bool
}

// ValidateRecurrenceRule проверяет правило перед развёртыванием.
// Нарушения — ошибки валидации, возвращаются вызывающему с конкретной причиной:
// count < 1, count выше потолка, дата окончания раньше даты начала,
// отсутствующие обязательные поля.
func ValidateRecurrenceRule(rule domain.RecurrenceRule, ceiling int) error {
	if ceiling <= 0 {
		ceiling = domain.DefaultMaxRecurrenceOccurrences
	}

	if rule.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidRecurrenceRule)
	}
	if err := rule.TimeOfDay.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time of day: %v", ErrInvalidRecurrenceRule, err)
	}

	switch rule.Mode {
	case domain.RecurrenceByCount:
		if rule.Count == nil {
			return fmt.Errorf("%w: count is required for count mode", ErrInvalidRecurrenceRule)
		}
		if *rule.Count < 1 {
			return fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidRecurrenceRule, *rule.Count)
		}
		if *rule.Count > ceiling {
			return fmt.Errorf("%w: requested %d, ceiling %d", ErrTooManyOccurrences, *rule.Count, ceiling)
		}
	case domain.RecurrenceByEndDate:
		if rule.EndDate == nil {
			return fmt.Errorf("%w: end date is required for endDate mode", ErrInvalidRecurrenceRule)
		}
		if dateOnly(*rule.EndDate).Before(dateOnly(rule.StartDate)) {
			return ErrEndBeforeStart
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRecurrenceRule, rule.Mode)
	}

	return nil
}

// ExpandWeekly разворачивает еженедельное правило в упорядоченный список
// конкретных моментов: дата + фиксированное время дня, шаг 7 дней.
// Потолок применяется всегда, независимо от режима; усечение помечается
// флагом Truncated. Сами даты создаются вызывающим по одной — частичный
// провал ожидаем и фиксируется по-датно, не откатывая соседей.
func ExpandWeekly(rule domain.RecurrenceRule, ceiling int) (ExpandResult, error) {
	if ceiling <= 0 {
		ceiling = domain.DefaultMaxRecurrenceOccurrences
	}

	if rule.StartDate.IsZero() {
		return ExpandResult{}, fmt.Errorf("%w: start date is required", ErrInvalidRecurrenceRule)
	}
	timeOfDayMin, err := rule.TimeOfDay.Minutes()
	if err != nil {
		return ExpandResult{}, fmt.Errorf("%w: invalid time of day: %v", ErrInvalidRecurrenceRule, err)
	}

	switch rule.Mode {
	case domain.RecurrenceByCount:
		if rule.Count == nil || *rule.Count < 1 {
			return ExpandResult{}, fmt.Errorf("%w: count must be at least 1", ErrInvalidRecurrenceRule)
		}

		requested := *rule.Count
		n := requested
		truncated := false
		if n > ceiling {
			n = ceiling
			truncated = true
		}

		dates := make([]time.Time, 0, n)
		for i := 0; i < n; i++ {
			dates = append(dates, occurrenceAt(rule.StartDate, timeOfDayMin, i))
		}
		return ExpandResult{Dates: dates, Truncated: truncated}, nil

	case domain.RecurrenceByEndDate:
		if rule.EndDate == nil {
			return ExpandResult{}, fmt.Errorf("%w: end date is required for endDate mode", ErrInvalidRecurrenceRule)
		}
		end := dateOnly(*rule.EndDate)
		if end.Before(dateOnly(rule.StartDate)) {
			return ExpandResult{}, ErrEndBeforeStart
		}

		var dates []time.Time
		truncated := false
		for i := 0; ; i++ {
			next := occurrenceAt(rule.StartDate, timeOfDayMin, i)
			if dateOnly(next).After(end) {
				break
			}
			if len(dates) == ceiling {
				truncated = true
				break
			}
			dates = append(dates, next)
		}
		return ExpandResult{Dates: dates, Truncated: truncated}, nil

	default:
		return ExpandResult{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidRecurrenceRule, rule.Mode)
	}
}

// occurrenceAt возвращает i-е повторение: дата начала + 7*i дней, время дня фиксировано
func occurrenceAt(startDate time.Time, timeOfDayMin int, i int) time.Time {
	day := dateOnly(startDate).AddDate(0, 0, 7*i)
	return day.Add(time.Duration(timeOfDayMin) * time.Minute)
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
