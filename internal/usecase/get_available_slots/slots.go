package get_available_slots

import (
	"fmt"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// buildSlots генерирует кандидатов по сетке и оставляет проходящие все проверки:
// минимальное время до начала, перерывы, конфликты основного сегмента и
// выполнимость follow-up сегмента хотя бы одним мастером
func (uc *UseCase) buildSlots(
	req *Request,
	worker *domain.Worker,
	roster []*domain.Worker,
	salonSchedule *domain.WeeklySchedule,
	window *scheduling.Span,
	dayKey string,
	now time.Time,
	dayBookings []*domain.Booking,
) ([]domain.AvailableSlot, error) {
	totalSpan := req.PrimaryDurationMinutes
	if req.FollowUpDurationMinutes > 0 {
		totalSpan += req.WaitMinutes + req.FollowUpDurationMinutes
	}

	businessBreaks, err := scheduling.DayBreaks(salonSchedule, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	workerBreaks, err := scheduling.DayBreaks(&worker.Availability, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	primaryBreaks := scheduling.MergeBreaks(businessBreaks, workerBreaks)

	bookingsByWorker := make(map[string][]*domain.Booking)
	for _, booking := range dayBookings {
		bookingsByWorker[booking.WorkerID] = append(bookingsByWorker[booking.WorkerID], booking)
	}

	// Эффективные окна кандидатов на follow-up
	followUpWindows := make(map[string]*scheduling.Span, len(roster))
	businessWindow, err := scheduling.DayWindow(salonSchedule, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	for _, candidate := range roster {
		candidateWindow, err := scheduling.WorkerWindowFor(candidate, dayKey)
		if err != nil {
			continue
		}
		if effective := scheduling.EffectiveWindow(candidateWindow, businessWindow); effective != nil {
			followUpWindows[candidate.ID] = effective
		}
	}

	// Минимально допустимое начало для записей на сегодня
	minStartMin := -1
	if isSameDay(req.Date, now) {
		nowMin, err := scheduling.MinutesSinceDayStart(dayKey, req.Date.Location(), now)
		if err == nil {
			minStartMin = nowMin + uc.noticeMinutes
		}
	}

	granularity := uc.limits.SlotGranularityMinutes

	// Выравниваем первый кандидат по сетке
	firstStart := window.StartMin
	if rem := firstStart % granularity; rem != 0 {
		firstStart += granularity - rem
	}

	slots := make([]domain.AvailableSlot, 0)

	for startMin := firstStart; startMin+totalSpan <= window.EndMin; startMin += granularity {
		if minStartMin >= 0 && startMin < minStartMin {
			continue
		}

		phase1 := scheduling.Span{StartMin: startMin, EndMin: startMin + req.PrimaryDurationMinutes}

		if scheduling.SegmentOverlapsBreaks(phase1.StartMin, phase1.EndMin, primaryBreaks) {
			continue
		}
		if scheduling.HasConflict(phase1.StartMin, phase1.EndMin, bookingsByWorker[worker.ID], nil).HasConflict {
			continue
		}

		if req.FollowUpDurationMinutes > 0 {
			phase2Start := startMin + req.PrimaryDurationMinutes + req.WaitMinutes
			phase2 := scheduling.Span{StartMin: phase2Start, EndMin: phase2Start + req.FollowUpDurationMinutes}

			if !uc.followUpFeasible(req, roster, phase2, dayKey, businessBreaks, followUpWindows, bookingsByWorker) {
				continue
			}
		}

		startTime, err := types.NewTimeStringFromMinutes(startMin)
		if err != nil {
			continue
		}
		slots = append(slots, domain.AvailableSlot{
			StartTime:       startTime,
			DurationMinutes: totalSpan,
		})
	}

	return slots, nil
}

// followUpFeasible проверяет, что follow-up сегмент в это время сможет
// выполнить хотя бы один мастер (с учетом его окна, занятости и перерывов)
func (uc *UseCase) followUpFeasible(
	req *Request,
	roster []*domain.Worker,
	phase2 scheduling.Span,
	dayKey string,
	businessBreaks []scheduling.Span,
	windows map[string]*scheduling.Span,
	bookingsByWorker map[string][]*domain.Booking,
) bool {
	serviceTypeID := req.ServiceTypeID
	if req.FollowUpServiceTypeID != nil {
		serviceTypeID = *req.FollowUpServiceTypeID
	}

	eligible := scheduling.EligibleFollowUpWorkers(scheduling.FollowUpRequest{
		PrimaryWorkerID:  req.WorkerID,
		ServiceTypeID:    serviceTypeID,
		Phase2StartMin:   phase2.StartMin,
		Phase2EndMin:     phase2.EndMin,
		Workers:          roster,
		BookingsByWorker: bookingsByWorker,
		WindowsByWorker:  windows,
	})

	for _, candidate := range eligible {
		workerBreaks, err := scheduling.DayBreaks(&candidate.Availability, dayKey)
		if err != nil {
			continue
		}
		merged := scheduling.MergeBreaks(businessBreaks, workerBreaks)
		if !scheduling.SegmentOverlapsBreaks(phase2.StartMin, phase2.EndMin, merged) {
			return true
		}
	}

	return false
}
