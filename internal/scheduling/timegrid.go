package scheduling

import (
	"fmt"
	"math"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// PixelsPerMinute общий масштаб позиционной раскладки календаря
// Любой потребитель, которому нужна вертикальная раскладка дня (например, экспорт
// расписания), использует этот масштаб, чтобы смещения совпадали между собой
const PixelsPerMinute = 2

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// DayKey возвращает ключ дня для момента времени в формате YYYY-MM-DD
func DayKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}

// DayStart возвращает локальную полночь дня по его ключу
func DayStart(dayKey string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(domain.DateFormat, dayKey, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, dayKey)
	}
	return t, nil
}

// MinutesSinceDayStart возвращает количество минут от полуночи указанного дня
// до момента instant. Результат может быть отрицательным или превышать 1440,
// если момент не принадлежит этому дню — вызывающий обязан обработать оба случая.
func MinutesSinceDayStart(dayKey string, loc *time.Location, instant time.Time) (int, error) {
	start, err := DayStart(dayKey, loc)
	if err != nil {
		return 0, err
	}
	return int(instant.Sub(start) / time.Minute), nil
}

// SnapBounds границы для SnapToGranularity
type SnapBounds struct {
	Min int
	Max int
}

// SnapToGranularity округляет minutes до ближайшего кратного granularity,
// затем ограничивает результат границами bounds (если переданы).
// Неконечные значения (NaN, ±Inf) дают 0.
func SnapToGranularity(minutes float64, granularity int, bounds *SnapBounds) int {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0
	}
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}

	snapped := int(math.Round(minutes/float64(granularity))) * granularity

	if bounds != nil {
		if snapped < bounds.Min {
			snapped = bounds.Min
		}
		if snapped > bounds.Max {
			snapped = bounds.Max
		}
	}

	return snapped
}

// MinutesToOffsetPx переводит минуты в пиксельное смещение по общему масштабу
func MinutesToOffsetPx(minutes int) int {
	return minutes * PixelsPerMinute
}
