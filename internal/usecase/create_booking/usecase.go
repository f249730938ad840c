package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	scheduleRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/schedule"
	clientClient "github.com/mirelka/SLN-SchedulingService/internal/integrations/clientservice"
	staffClient "github.com/mirelka/SLN-SchedulingService/internal/integrations/staffservice"
	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
	"github.com/mirelka/SLN-SchedulingService/pkg/ptr"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// UseCase use case для создания записи (одно- или двухфазной)
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	comboRepo     ComboRepository
	staffClient   StaffServiceClient
	clientClient  ClientServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
	limits        scheduling.Limits
	noticeMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepository ScheduleRepository,
	comboRepo ComboRepository,
	staff StaffServiceClient,
	client ClientServiceClient,
	txManager TransactionManager,
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
		comboRepo:     comboRepo,
		staffClient:   staff,
		clientClient:  client,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		limits:        limits.Normalized(),
		noticeMinutes: noticeMinutes,
	}
}

// Execute выполняет use case создания записи
// Все проверки занятости и вставка сегментов идут в одной сериализуемой
// транзакции: сегмент phase=2 не может появиться без родителя, а два
// конкурирующих запроса не могут занять один интервал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: salon=%d, client=%d, worker=%s, date=%s, time=%s, durations=%d/%d/%d",
		req.SalonID, req.ClientID, req.WorkerID, req.Date.Format(domain.DateFormat), req.StartTime,
		req.PrimaryDurationMinutes, req.WaitMinutes, req.FollowUpDurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.limits); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	hasFollowUp := req.FollowUpDurationMinutes > 0

	// 2. Получаем основного мастера и проверяем его квалификацию
	worker, err := uc.staffClient.GetWorker(ctx, req.SalonID, req.WorkerID)
	if err != nil {
		if errors.Is(err, staffClient.ErrWorkerNotFound) {
			uc.logger.Warn("CreateBooking: worker id=%s not found in salon id=%d", req.WorkerID, req.SalonID)
			return nil, ErrWorkerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get worker id=%s: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
	}
	if !worker.Active {
		uc.logger.Warn("CreateBooking: worker id=%s is inactive", req.WorkerID)
		return nil, ErrWorkerInactive
	}
	for _, serviceTypeID := range req.ServiceTypeIDs {
		if !worker.CanPerform(serviceTypeID) {
			uc.logger.Warn("CreateBooking: worker id=%s cannot perform service id=%d", req.WorkerID, serviceTypeID)
			return nil, ErrWorkerNotQualified
		}
	}

	// 3. Для follow-up сегмента понадобится весь ростер салона
	// При недоступности StaffService деградируем до единственного кандидата —
	// основного мастера
	roster := []*domain.Worker{worker}
	if hasFollowUp {
		workers, err := uc.staffClient.GetWorkers(ctx, req.SalonID)
		if err != nil {
			uc.logger.Warn("CreateBooking: failed to fetch salon roster, follow-up candidates limited to primary worker: %v", err)
		} else {
			roster = workers
		}
	}

	// 4. Профиль клиента — best effort, запись создается и без него
	var clientPhone, clientName *string
	profile, err := uc.clientClient.GetClientWithGracefulDegradation(ctx, req.ClientID)
	switch {
	case err == nil:
		if profile.Phone != "" {
			clientPhone = ptr.Ptr(profile.Phone)
		}
		if profile.Name != "" {
			clientName = ptr.Ptr(profile.Name)
		}
	case errors.Is(err, clientClient.ErrClientNotFound):
		uc.logger.Warn("CreateBooking: client id=%d has no profile, creating booking without denormalized data", req.ClientID)
	default:
		// Graceful degradation: клиентский сервис недоступен
		uc.logger.Warn("CreateBooking: proceeding without client profile: %v", err)
	}

	// 5. Границы фаз — единственный источник истины для времен сегментов
	startAt, err := startInstant(req.Date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	bounds, err := scheduling.ComputePhaseBounds(startAt, req.PrimaryDurationMinutes, req.WaitMinutes, req.FollowUpDurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: phase bounds rejected: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Валидация даты и минимального времени до начала
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingNotice(req.Date, req.StartTime, now, uc.noticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: notice validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 7. Проверки занятости и вставка — в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		response, err := uc.createInTx(txCtx, req, worker, roster, bounds, clientPhone, clientName)
		if err != nil {
			return err
		}
		result = response
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (follow-up: %v)", result.BookingID, result.FollowUp != nil)
	return result, nil
}

// createInTx выполняет шаги, требующие согласованного снимка занятости
func (uc *UseCase) createInTx(
	ctx context.Context,
	req *Request,
	worker *domain.Worker,
	roster []*domain.Worker,
	bounds scheduling.PhaseBounds,
	clientPhone, clientName *string,
) (*Response, error) {
	dayKey := scheduling.DayKey(req.Date)
	loc := req.Date.Location()
	hasFollowUp := bounds.HasFollowUp()

	// 7.1. Рабочие часы салона; их отсутствие не запрещает запись —
	// действует личное окно мастера
	salonSchedule, err := uc.scheduleRepo.GetBySalonID(ctx, req.SalonID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("CreateBooking: failed to get salon schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get salon schedule: %v", ErrInternal, err)
	}

	businessWindow, err := scheduling.DayWindow(salonSchedule, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	businessBreaks, err := scheduling.DayBreaks(salonSchedule, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	workerWindow, err := scheduling.WorkerWindowFor(worker, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	workerBreaks, err := scheduling.DayBreaks(&worker.Availability, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 7.2. Сопоставление выбора услуг с правилами комбо
	combos, err := uc.comboRepo.GetActiveBySalonID(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get combos: %v", err)
		return nil, fmt.Errorf("%w: failed to get combos: %v", ErrInternal, err)
	}
	match := scheduling.MatchCombo(scheduling.NewIDSet(req.ServiceTypeIDs...), combos)
	if match != nil {
		uc.logger.Info("CreateBooking: combo id=%d (%s) matched, %d steps",
			match.Combo.ID, match.Combo.Name, len(match.Steps))
	}

	// 7.3. Сегменты услуги в минутах от полуночи; пауза ожидания в проверки
	// перерывов не входит
	segments, err := bounds.ServiceSegments(dayKey, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	phase1 := segments[0]

	// 7.4. Основной сегмент: эффективное окно и перерывы
	if !scheduling.IsWithinWindow(phase1.StartMin, phase1.EndMin, workerWindow, businessWindow) {
		uc.logger.Warn("CreateBooking: primary segment [%d, %d) outside working hours", phase1.StartMin, phase1.EndMin)
		return nil, ErrOutsideWorkingHours
	}
	primaryBreaks := scheduling.MergeBreaks(businessBreaks, workerBreaks)
	if scheduling.SegmentOverlapsBreaks(phase1.StartMin, phase1.EndMin, primaryBreaks) {
		uc.logger.Warn("CreateBooking: primary segment [%d, %d) overlaps a break", phase1.StartMin, phase1.EndMin)
		return nil, ErrBreakOverlap
	}

	// 7.5. Все сегменты дня по салону, с блокировкой FOR UPDATE
	dayBookings, err := uc.bookingRepo.GetBySalonWithFilter(ctx, domain.SalonBookingsFilter{
		SalonID:   req.SalonID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get day bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get day bookings: %v", ErrInternal, err)
	}
	bookingsByWorker := groupByWorker(dayBookings)

	// 7.6. Конфликты основного сегмента
	check := scheduling.HasConflict(phase1.StartMin, phase1.EndMin, bookingsByWorker[worker.ID], nil)
	if check.HasConflict {
		uc.logger.Warn("CreateBooking: primary segment conflicts with booking id=%d", check.Conflicting.ID)
		return nil, ErrSlotConflict
	}

	// 7.7. Выбор мастера для follow-up сегмента
	var assignment *scheduling.Assignment
	if hasFollowUp {
		phase2 := segments[1]
		assignment, err = uc.resolveFollowUp(req, roster, phase2, dayKey, businessWindow, businessBreaks, bookingsByWorker)
		if err != nil {
			return nil, err
		}
	}

	// 7.8. Вставка сегментов
	primaryServiceTypeID := primaryServiceType(req)
	serviceName := req.ServiceName
	var comboID *int64
	var comboName *string
	if match != nil {
		serviceName = match.Combo.Name
		comboID = ptr.Ptr(match.Combo.ID)
		comboName = ptr.Ptr(match.Combo.Name)
	}

	parent := &domain.Booking{
		SalonID:                 req.SalonID,
		ClientID:                req.ClientID,
		WorkerID:                worker.ID,
		BookingDate:             req.Date,
		StartTime:               req.StartTime,
		DurationMinutes:         bounds.PrimaryMinutes,
		Phase:                   domain.PhasePrimary,
		PrimaryDurationMinutes:  bounds.PrimaryMinutes,
		WaitMinutes:             bounds.WaitMinutes,
		FollowUpDurationMinutes: bounds.FollowUpMinutes,
		Status:                  domain.StatusBooked,
		ServiceTypeID:           primaryServiceTypeID,
		ServiceName:             serviceName,
		ClientPhone:             clientPhone,
		ClientName:              clientName,
		Notes:                   req.Notes,
	}

	created, err := uc.bookingRepo.Create(ctx, parent)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create primary segment: %v", err)
		return nil, fmt.Errorf("%w: failed to create primary segment: %v", ErrInternal, err)
	}

	response := &Response{
		BookingID: created.ID,
		SalonID:   created.SalonID,
		ClientID:  created.ClientID,
		Status:    string(created.Status),
		Primary: SegmentResponse{
			ID:              created.ID,
			WorkerID:        worker.ID,
			WorkerName:      worker.Name,
			Date:            created.BookingDate,
			StartTime:       created.StartTime,
			DurationMinutes: created.DurationMinutes,
			Phase:           created.Phase,
		},
		WaitMinutes: bounds.WaitMinutes,
		ComboID:     comboID,
		ComboName:   comboName,
		ServiceName: created.ServiceName,
		Notes:       created.Notes,
		CreatedAt:   created.CreatedAt,
	}

	if hasFollowUp {
		child := &domain.Booking{
			SalonID:                 req.SalonID,
			ClientID:                req.ClientID,
			WorkerID:                assignment.ID,
			BookingDate:             req.Date,
			StartTime:               types.NewTimeString(bounds.Phase2Start),
			DurationMinutes:         bounds.FollowUpMinutes,
			Phase:                   domain.PhaseFollowUp,
			ParentBookingID:         ptr.Ptr(created.ID),
			PrimaryDurationMinutes:  bounds.PrimaryMinutes,
			WaitMinutes:             bounds.WaitMinutes,
			FollowUpDurationMinutes: bounds.FollowUpMinutes,
			Status:                  domain.StatusBooked,
			ServiceTypeID:           followUpServiceType(req),
			ServiceName:             serviceName,
			ClientPhone:             clientPhone,
			ClientName:              clientName,
		}

		createdChild, err := uc.bookingRepo.Create(ctx, child)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create follow-up segment: %v", err)
			return nil, fmt.Errorf("%w: failed to create follow-up segment: %v", ErrInternal, err)
		}

		response.FollowUp = &SegmentResponse{
			ID:              createdChild.ID,
			WorkerID:        createdChild.WorkerID,
			WorkerName:      assignment.Name,
			Date:            createdChild.BookingDate,
			StartTime:       createdChild.StartTime,
			DurationMinutes: createdChild.DurationMinutes,
			Phase:           createdChild.Phase,
		}
	}

	return response, nil
}

// resolveFollowUp выбирает мастера для follow-up сегмента
// Выбор детерминирован; кандидаты, чей перерыв пересекает сегмент,
// исключаются и выбор повторяется
func (uc *UseCase) resolveFollowUp(
	req *Request,
	roster []*domain.Worker,
	phase2 scheduling.Span,
	dayKey string,
	businessWindow *scheduling.Span,
	businessBreaks []scheduling.Span,
	bookingsByWorker map[string][]*domain.Booking,
) (*scheduling.Assignment, error) {
	followUpService := int64(0)
	if id := followUpServiceType(req); id != nil {
		followUpService = *id
	}

	candidates := make([]*domain.Worker, len(roster))
	copy(candidates, roster)

	windows := make(map[string]*scheduling.Span, len(candidates))
	for _, candidate := range candidates {
		window, err := scheduling.WorkerWindowFor(candidate, dayKey)
		if err != nil {
			continue
		}
		if effective := scheduling.EffectiveWindow(window, businessWindow); effective != nil {
			windows[candidate.ID] = effective
		}
	}

	for len(candidates) > 0 {
		assignment := scheduling.ResolveFollowUpWorker(scheduling.FollowUpRequest{
			PrimaryWorkerID:  req.WorkerID,
			ServiceTypeID:    followUpService,
			Phase2StartMin:   phase2.StartMin,
			Phase2EndMin:     phase2.EndMin,
			Workers:          candidates,
			BookingsByWorker: bookingsByWorker,
			WindowsByWorker:  windows,
		})
		if assignment == nil {
			break
		}

		chosen := workerByID(candidates, assignment.ID)
		workerBreaks, err := scheduling.DayBreaks(&chosen.Availability, dayKey)
		if err != nil {
			workerBreaks = nil
		}
		merged := scheduling.MergeBreaks(businessBreaks, workerBreaks)
		if !scheduling.SegmentOverlapsBreaks(phase2.StartMin, phase2.EndMin, merged) {
			return assignment, nil
		}

		// Перерыв пересекает сегмент — кандидат выбывает
		uc.logger.Info("CreateBooking: follow-up candidate %s rejected, segment overlaps a break", assignment.ID)
		candidates = removeWorker(candidates, assignment.ID)
	}

	uc.logger.Warn("CreateBooking: no eligible worker for follow-up segment [%d, %d)", phase2.StartMin, phase2.EndMin)
	return nil, ErrNoEligibleWorker
}

func primaryServiceType(req *Request) *int64 {
	if len(req.ServiceTypeIDs) == 0 {
		return nil
	}
	return ptr.Ptr(req.ServiceTypeIDs[0])
}

func followUpServiceType(req *Request) *int64 {
	if req.FollowUpServiceTypeID != nil {
		return req.FollowUpServiceTypeID
	}
	return primaryServiceType(req)
}

func groupByWorker(bookings []*domain.Booking) map[string][]*domain.Booking {
	grouped := make(map[string][]*domain.Booking)
	for _, booking := range bookings {
		grouped[booking.WorkerID] = append(grouped[booking.WorkerID], booking)
	}
	return grouped
}

func workerByID(workers []*domain.Worker, id string) *domain.Worker {
	for _, worker := range workers {
		if worker.ID == id {
			return worker
		}
	}
	return nil
}

func removeWorker(workers []*domain.Worker, id string) []*domain.Worker {
	out := workers[:0]
	for _, worker := range workers {
		if worker.ID != id {
			out = append(out, worker)
		}
	}
	return out
}
