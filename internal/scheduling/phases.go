package scheduling

import (
	"fmt"
	"time"
)

// PhaseBounds четыре момента, ограничивающие сегменты записи
// Единственный источник истины для границ фаз: любой код, которому нужны
// времена сегментов, обязан проходить через ComputePhaseBounds, а не
// пересчитывать арифметику на месте.
type PhaseBounds struct {
	Phase1Start time.Time
	Phase1End   time.Time
	Phase2Start time.Time
	Phase2End   time.Time

	PrimaryMinutes  int
	WaitMinutes     int
	FollowUpMinutes int
}

// HasFollowUp возвращает true, если запись содержит follow-up сегмент
// При followUp = 0 поля Phase2Start/Phase2End совпадают и сегмента нет
func (pb PhaseBounds) HasFollowUp() bool {
	return pb.FollowUpMinutes > 0
}

// ServiceSegments возвращает сегменты, в которых оказывается услуга,
// в минутах от полуночи дня dayKey. Пауза ожидания сегментом не является.
func (pb PhaseBounds) ServiceSegments(dayKey string, loc *time.Location) ([]Span, error) {
	p1Start, err := MinutesSinceDayStart(dayKey, loc, pb.Phase1Start)
	if err != nil {
		return nil, err
	}

	segments := []Span{{StartMin: p1Start, EndMin: p1Start + pb.PrimaryMinutes}}

	if pb.HasFollowUp() {
		p2Start := p1Start + pb.PrimaryMinutes + pb.WaitMinutes
		segments = append(segments, Span{StartMin: p2Start, EndMin: p2Start + pb.FollowUpMinutes})
	}

	return segments, nil
}

// TotalSpanMinutes возвращает полную протяжённость записи от начала phase 1
// до конца последнего сегмента
func (pb PhaseBounds) TotalSpanMinutes() int {
	if pb.HasFollowUp() {
		return pb.PrimaryMinutes + pb.WaitMinutes + pb.FollowUpMinutes
	}
	return pb.PrimaryMinutes
}

// ComputePhaseBounds вычисляет границы фаз записи
// Вся арифметика — в целых минутах, чтобы исключить дрейф плавающей точки:
//
//	phase1End   = startAt + primary
//	phase2Start = phase1End + wait
//	phase2End   = phase2Start + followUp
func ComputePhaseBounds(startAt time.Time, primaryMinutes, waitMinutes, followUpMinutes int) (PhaseBounds, error) {
	if startAt.IsZero() {
		return PhaseBounds{}, fmt.Errorf("%w: start instant is required", ErrInvalidInterval)
	}
	if primaryMinutes <= 0 {
		return PhaseBounds{}, fmt.Errorf("%w: primary duration must be positive, got %d", ErrInvalidDuration, primaryMinutes)
	}
	if waitMinutes < 0 {
		return PhaseBounds{}, fmt.Errorf("%w: wait must be non-negative, got %d", ErrInvalidDuration, waitMinutes)
	}
	if followUpMinutes < 0 {
		return PhaseBounds{}, fmt.Errorf("%w: follow-up must be non-negative, got %d", ErrInvalidDuration, followUpMinutes)
	}

	phase1End := startAt.Add(time.Duration(primaryMinutes) * time.Minute)
	phase2Start := phase1End.Add(time.Duration(waitMinutes) * time.Minute)
	phase2End := phase2Start.Add(time.Duration(followUpMinutes) * time.Minute)

	return PhaseBounds{
		Phase1Start:     startAt,
		Phase1End:       phase1End,
		Phase2Start:     phase2Start,
		Phase2End:       phase2End,
		PrimaryMinutes:  primaryMinutes,
		WaitMinutes:     waitMinutes,
		FollowUpMinutes: followUpMinutes,
	}, nil
}
