package scheduling

import (
	"fmt"
	"sort"
)

// Span полуинтервал [StartMin, EndMin) в минутах от полуночи
// Используется для сегментов услуг, перерывов и рабочих окон
type Span struct {
	StartMin int
	EndMin   int
}

// Length возвращает длину интервала в минутах
func (s Span) Length() int {
	return s.EndMin - s.StartMin
}

// IsEmpty возвращает true для пустого или вырожденного интервала
func (s Span) IsEmpty() bool {
	return s.EndMin <= s.StartMin
}

// Overlaps проверяет реальное пересечение двух полуинтервалов
// Граничные случаи (конец одного равен началу другого) пересечением НЕ считаются —
// это сознательная политика, разрешающая бронирования вплотную к перерывам
// и друг к другу. Подтверждено как поведение продукта, менять только осознанно.
func (s Span) Overlaps(other Span) bool {
	return s.StartMin < other.EndMin && other.StartMin < s.EndMin
}

// SegmentOverlapsBreaks возвращает true, если сегмент [startMin, endMin)
// пересекается хотя бы с одним перерывом
func SegmentOverlapsBreaks(startMin, endMin int, breaks []Span) bool {
	segment := Span{StartMin: startMin, EndMin: endMin}
	if segment.IsEmpty() {
		return false
	}
	for _, br := range breaks {
		if br.IsEmpty() {
			continue
		}
		if segment.Overlaps(br) {
			return true
		}
	}
	return false
}

// AnyServiceSegmentOverlapsBreaks проверяет пересечение с перерывами для списка
// непересекающихся сегментов услуг (например, primary + follow-up).
// Ключевой контракт: проверяются только сегменты, где реально оказывается услуга.
// Пауза ожидания МЕЖДУ сегментами может проходить через перерыв — клиент ждёт,
// мастер обедает. Запрещена только работа во время перерыва.
func AnyServiceSegmentOverlapsBreaks(segments []Span, breaks []Span) bool {
	for _, seg := range segments {
		// Вырожденные сегменты (follow-up нулевой длины) не проверяем
		if seg.IsEmpty() {
			continue
		}
		if SegmentOverlapsBreaks(seg.StartMin, seg.EndMin, breaks) {
			return true
		}
	}
	return false
}

// FilterTimesByBreaks отбрасывает кандидатов, чей сегмент длительностью
// durationMinutes пересёкся бы с перерывом
func FilterTimesByBreaks(candidateStartsMin []int, durationMinutes int, breaks []Span) []int {
	if durationMinutes <= 0 {
		return candidateStartsMin
	}

	filtered := make([]int, 0, len(candidateStartsMin))
	for _, start := range candidateStartsMin {
		if !SegmentOverlapsBreaks(start, start+durationMinutes, breaks) {
			filtered = append(filtered, start)
		}
	}
	return filtered
}

// MergeBreaks объединяет перерывы из разных источников (салон и мастер)
// в один отсортированный список для передачи в проверки пересечений
// Пустые интервалы отбрасываются
func MergeBreaks(lists ...[]Span) []Span {
	var merged []Span
	for _, list := range lists {
		for _, br := range list {
			if br.IsEmpty() {
				continue
			}
			merged = append(merged, br)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].StartMin != merged[j].StartMin {
			return merged[i].StartMin < merged[j].StartMin
		}
		return merged[i].EndMin < merged[j].EndMin
	})
	return merged
}

// ValidateBreaks проверяет инварианты перерывов: начало строго раньше конца,
// перерыв целиком внутри рабочего окна
func ValidateBreaks(window Span, breaks []Span) error {
	for _, br := range breaks {
		if br.StartMin >= br.EndMin {
			return fmt.Errorf("%w: start %d >= end %d", ErrInvalidBreak, br.StartMin, br.EndMin)
		}
		if br.StartMin < window.StartMin || br.EndMin > window.EndMin {
			return fmt.Errorf("%w: break [%d, %d) is outside working window [%d, %d)",
				ErrInvalidBreak, br.StartMin, br.EndMin, window.StartMin, window.EndMin)
		}
	}
	return nil
}
