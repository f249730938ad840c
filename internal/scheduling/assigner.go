package scheduling

import (
	"sort"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
)

// FollowUpRequest входные данные выбора мастера для follow-up сегмента
type FollowUpRequest struct {
	PrimaryWorkerID string
	ServiceTypeID   int64 // услуга follow-up сегмента
	Phase2StartMin  int
	Phase2EndMin    int

	// Workers весь ростер мастеров салона
	Workers []*domain.Worker

	// BookingsByWorker бронирования дня, сгруппированные по мастерам
	BookingsByWorker map[string][]*domain.Booking

	// WindowsByWorker эффективные рабочие окна мастеров на день
	// nil-карта — проверка окон не выполняется (данные не переданы);
	// отсутствие мастера в непустой карте — мастер недоступен
	WindowsByWorker map[string]*Span

	// ExcludeBookingIDs записи, игнорируемые при проверке конфликтов
	// (сегменты редактируемой записи)
	ExcludeBookingIDs []int64
}

// Assignment выбранный мастер для follow-up сегмента
type Assignment struct {
	ID   string
	Name string
}

// EligibleFollowUpWorkers отбирает мастеров, способных выполнить follow-up:
// активных, умеющих услугу, без конфликтов в интервале phase 2 и
// (если переданы окна) с окном, целиком содержащим интервал
func EligibleFollowUpWorkers(req FollowUpRequest) []*domain.Worker {
	var eligible []*domain.Worker

	for _, worker := range req.Workers {
		if worker == nil || !worker.Active {
			continue
		}
		if !worker.CanPerform(req.ServiceTypeID) {
			continue
		}

		if req.WindowsByWorker != nil {
			window, ok := req.WindowsByWorker[worker.ID]
			if !ok || window == nil {
				continue
			}
			if !IsWithinWindow(req.Phase2StartMin, req.Phase2EndMin, window, nil) {
				continue
			}
		}

		check := HasConflict(req.Phase2StartMin, req.Phase2EndMin, req.BookingsByWorker[worker.ID], req.ExcludeBookingIDs)
		if check.HasConflict {
			continue
		}

		eligible = append(eligible, worker)
	}

	return eligible
}

// ResolveFollowUpWorker выбирает мастера для follow-up сегмента.
// Если основной мастер входит в число подходящих — всегда он (непрерывность
// обслуживания клиента). Иначе выбор детерминированный: меньше занятых
// интервалов в этот день, при равенстве — меньший ID (лексикографически).
// Ни имя, ни порядок в списке на результат не влияют — выбор воспроизводим.
// nil означает «подходящих мастеров нет», вызывающий обязан отклонить запись.
func ResolveFollowUpWorker(req FollowUpRequest) *Assignment {
	eligible := EligibleFollowUpWorkers(req)
	if len(eligible) == 0 {
		return nil
	}

	for _, worker := range eligible {
		if worker.ID == req.PrimaryWorkerID {
			return &Assignment{ID: worker.ID, Name: worker.Name}
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		busyI := CountBusyIntervals(req.BookingsByWorker[eligible[i].ID])
		busyJ := CountBusyIntervals(req.BookingsByWorker[eligible[j].ID])
		if busyI != busyJ {
			return busyI < busyJ
		}
		return eligible[i].ID < eligible[j].ID
	})

	chosen := eligible[0]
	return &Assignment{ID: chosen.ID, Name: chosen.Name}
}
