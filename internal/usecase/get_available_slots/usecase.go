package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	scheduleRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/schedule"
	staffClient "github.com/mirelka/SLN-SchedulingService/internal/integrations/staffservice"
	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
)

// UseCase use case для получения доступных слотов мастера на день
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	staffClient   StaffServiceClient
	timeProvider  TimeProvider
	logger        Logger
	limits        scheduling.Limits
	noticeMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepository ScheduleRepository,
	staff StaffServiceClient,
	logger Logger,
	limits scheduling.Limits,
	noticeMinutes int,
) *UseCase {
	if noticeMinutes < 0 {
		noticeMinutes = domain.DefaultMinBookingNoticeMinutes
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepository,
		staffClient:   staff,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		limits:        limits.Normalized(),
		noticeMinutes: noticeMinutes,
	}
}

// Execute выполняет use case получения доступных слотов
// Слот считается доступным, только если в него помещается весь след записи:
// основной сегмент у запрошенного мастера и follow-up сегмент хотя бы у
// одного подходящего мастера салона
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, worker=%s, date=%s, durations=%d/%d/%d",
		req.SalonID, req.WorkerID, req.Date.Format(domain.DateFormat),
		req.PrimaryDurationMinutes, req.WaitMinutes, req.FollowUpDurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.limits); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	hasFollowUp := req.FollowUpDurationMinutes > 0

	// На прошедшую дату слотов нет
	if isDateInPast(req.Date, now) {
		return uc.closedResponse(req), nil
	}

	// 2. Мастер и его личное окно доступности
	worker, err := uc.staffClient.GetWorker(ctx, req.SalonID, req.WorkerID)
	if err != nil {
		if errors.Is(err, staffClient.ErrWorkerNotFound) {
			uc.logger.Warn("GetAvailableSlots: worker id=%s not found in salon id=%d", req.WorkerID, req.SalonID)
			return nil, ErrWorkerNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get worker id=%s: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
	}
	if !worker.Active {
		uc.logger.Info("GetAvailableSlots: worker id=%s is inactive", req.WorkerID)
		return uc.closedResponse(req), nil
	}

	// 3. Ростер для проверки выполнимости follow-up сегмента
	roster := []*domain.Worker{worker}
	if hasFollowUp {
		workers, err := uc.staffClient.GetWorkers(ctx, req.SalonID)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: roster unavailable, follow-up candidates limited to primary worker: %v", err)
		} else {
			roster = workers
		}
	}

	// 4. Рабочие часы салона; отсутствие записи — не ошибка
	salonSchedule, err := uc.scheduleRepo.GetBySalonID(ctx, req.SalonID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get salon schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get salon schedule: %v", ErrInternal, err)
	}

	dayKey := scheduling.DayKey(req.Date)

	businessWindow, err := scheduling.DayWindow(salonSchedule, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	workerWindow, err := scheduling.WorkerWindowFor(worker, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// 5. Эффективное окно: пересечение часов салона и личного окна мастера
	// Отсутствие окна трактуется как недоступность, не как «открыто весь день»
	window := scheduling.EffectiveWindow(workerWindow, businessWindow)
	if window == nil {
		uc.logger.Info("GetAvailableSlots: worker id=%s has no effective window on %s", req.WorkerID, dayKey)
		return uc.closedResponse(req), nil
	}

	// 6. Занятость дня по всему салону
	dayBookings, err := uc.bookingRepo.GetBySalonWithFilter(ctx, domain.SalonBookingsFilter{
		SalonID:   req.SalonID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get day bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get day bookings: %v", ErrInternal, err)
	}

	// 7. Генерация и фильтрация кандидатов
	slots, err := uc.buildSlots(req, worker, roster, salonSchedule, window, dayKey, now, dayBookings)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: %d slots available for worker=%s on %s", len(slots), req.WorkerID, dayKey)

	return &Response{
		SalonID:   req.SalonID,
		WorkerID:  req.WorkerID,
		Date:      req.Date,
		Available: true,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) closedResponse(req *Request) *Response {
	return &Response{
		SalonID:   req.SalonID,
		WorkerID:  req.WorkerID,
		Date:      req.Date,
		Available: false,
		Slots:     []domain.AvailableSlot{},
	}
}
