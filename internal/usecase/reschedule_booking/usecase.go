package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	bookingRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/booking"
	scheduleRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/schedule"
	staffClient "github.com/mirelka/SLN-SchedulingService/internal/integrations/staffservice"
	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
)

// UseCase use case для переноса одного сегмента записи
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	staffClient   StaffServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
	noticeMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	scheduleRepository ScheduleRepository,
	staff StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
	noticeMinutes int,
) *UseCase {
	if noticeMinutes < 0 {
		noticeMinutes = domain.DefaultMinBookingNoticeMinutes
	}
	return &UseCase{
		bookingRepo:   bookingRepository,
		scheduleRepo:  scheduleRepository,
		staffClient:   staff,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		noticeMinutes: noticeMinutes,
	}
}

// Execute выполняет use case переноса сегмента
// Сдвигается ровно один сегмент записи: phase=1 или phase=2. Второй сегмент
// остается на месте, но порядок фаз обязан сохраниться: follow-up не может
// начаться раньше конца основного сегмента. Проверки занятости исключают
// собственные записи бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, phase=%d, user=%d, date=%s, time=%s",
		req.BookingID, req.Phase, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateNotice(req.Date, req.StartTime, now, uc.noticeMinutes); err != nil {
		uc.logger.Warn("RescheduleBooking: notice validation failed: %v", err)
		return nil, err
	}

	// 2. Основная запись; идентификатор всегда указывает на phase=1
	parent, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if parent.Phase == domain.PhaseFollowUp {
		uc.logger.Warn("RescheduleBooking: id=%d references a follow-up segment, not a booking", req.BookingID)
		return nil, fmt.Errorf("%w: bookingID must reference the primary record", ErrInvalidInput)
	}

	// 3. Права доступа: владелец записи или менеджер салона
	if err := uc.checkAccess(ctx, parent, req.UserID); err != nil {
		return nil, err
	}

	var result *Response

	// 4. Проверки занятости и сдвиг — в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		response, err := uc.rescheduleInTx(txCtx, req, parent)
		if err != nil {
			return err
		}
		result = response
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully moved booking=%d phase=%d to %s %s",
		req.BookingID, req.Phase, result.Date.Format(domain.DateFormat), result.StartTime)
	return result, nil
}

// rescheduleInTx выполняет шаги, требующие согласованного снимка занятости
func (uc *UseCase) rescheduleInTx(ctx context.Context, req *Request, parent *domain.Booking) (*Response, error) {
	// 4.1. Второй сегмент записи, если он есть
	child, err := uc.bookingRepo.GetByParentID(ctx, parent.ID)
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("RescheduleBooking: failed to get follow-up segment of booking id=%d: %v", parent.ID, err)
		return nil, fmt.Errorf("%w: failed to get follow-up segment: %v", ErrInternal, err)
	}

	segment := parent
	sibling := child
	if req.Phase == domain.PhaseFollowUp {
		if child == nil {
			uc.logger.Warn("RescheduleBooking: booking id=%d has no follow-up segment", parent.ID)
			return nil, ErrSegmentNotFound
		}
		segment = child
		sibling = parent
	}

	if !segment.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d cannot be rescheduled, status=%s", parent.ID, segment.Status)
		return nil, ErrCannotReschedule
	}

	// 4.2. Новые границы сегмента в минутах от полуночи
	newStartMin, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	newEndMin := newStartMin + segment.DurationMinutes
	if newEndMin > scheduling.MinutesPerDay {
		return nil, fmt.Errorf("%w: segment must end within the same day", ErrInvalidInput)
	}

	// 4.3. Порядок фаз: оба сегмента остаются в одном дне, follow-up
	// начинается не раньше конца основного
	if sibling != nil {
		if !isSameDay(req.Date, sibling.BookingDate) {
			return nil, fmt.Errorf("%w: both segments must stay on the same day", ErrInvalidInput)
		}
		siblingStart, siblingEnd, err := sibling.SegmentMinutes()
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt sibling segment time: %v", ErrInternal, err)
		}
		switch req.Phase {
		case domain.PhasePrimary:
			if siblingStart < newEndMin {
				uc.logger.Warn("RescheduleBooking: primary [%d, %d) would overtake follow-up start %d", newStartMin, newEndMin, siblingStart)
				return nil, ErrSegmentOrderViolation
			}
		case domain.PhaseFollowUp:
			if newStartMin < siblingEnd {
				uc.logger.Warn("RescheduleBooking: follow-up [%d, %d) would start before primary end %d", newStartMin, newEndMin, siblingEnd)
				return nil, ErrSegmentOrderViolation
			}
		}
	}

	dayKey := scheduling.DayKey(req.Date)

	// 4.4. Рабочие окна и перерывы: салон + мастер сегмента
	salonSchedule, err := uc.scheduleRepo.GetBySalonID(ctx, parent.SalonID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("RescheduleBooking: failed to get salon schedule: %v", err)
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

	worker, err := uc.staffClient.GetWorker(ctx, parent.SalonID, segment.WorkerID)
	if err != nil {
		// Мастер уже закреплен за записью: его пропажа из реестра — аномалия
		uc.logger.Error("RescheduleBooking: failed to get worker id=%s: %v", segment.WorkerID, err)
		return nil, fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
	}
	workerWindow, err := scheduling.WorkerWindowFor(worker, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	workerBreaks, err := scheduling.DayBreaks(&worker.Availability, dayKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !scheduling.IsWithinWindow(newStartMin, newEndMin, workerWindow, businessWindow) {
		uc.logger.Warn("RescheduleBooking: segment [%d, %d) outside working hours", newStartMin, newEndMin)
		return nil, ErrOutsideWorkingHours
	}
	merged := scheduling.MergeBreaks(businessBreaks, workerBreaks)
	if scheduling.SegmentOverlapsBreaks(newStartMin, newEndMin, merged) {
		uc.logger.Warn("RescheduleBooking: segment [%d, %d) overlaps a break", newStartMin, newEndMin)
		return nil, ErrBreakOverlap
	}

	// 4.5. Конфликты с чужими записями; собственные сегменты исключаются
	dayBookings, err := uc.bookingRepo.GetBySalonWithFilter(ctx, domain.SalonBookingsFilter{
		SalonID:   parent.SalonID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	})
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get day bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get day bookings: %v", ErrInternal, err)
	}

	excludeIDs := []int64{parent.ID}
	if child != nil {
		excludeIDs = append(excludeIDs, child.ID)
	}
	workerBookings := make([]*domain.Booking, 0, len(dayBookings))
	for _, booking := range dayBookings {
		if booking.WorkerID == segment.WorkerID {
			workerBookings = append(workerBookings, booking)
		}
	}
	check := scheduling.HasConflict(newStartMin, newEndMin, workerBookings, excludeIDs)
	if check.HasConflict {
		uc.logger.Warn("RescheduleBooking: segment conflicts with booking id=%d", check.Conflicting.ID)
		return nil, ErrSlotConflict
	}

	// 4.6. Сдвиг сегмента
	if err := uc.bookingRepo.UpdateSegmentTime(ctx, segment.ID, req.Date, req.StartTime, segment.DurationMinutes); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to update segment id=%d: %v", segment.ID, err)
		return nil, fmt.Errorf("%w: failed to update segment: %v", ErrInternal, err)
	}

	return &Response{
		BookingID:       parent.ID,
		SegmentID:       segment.ID,
		Phase:           segment.Phase,
		WorkerID:        segment.WorkerID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: segment.DurationMinutes,
	}, nil
}

// checkAccess проверяет, что пользователь — владелец записи или менеджер салона
func (uc *UseCase) checkAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.ClientID == userID {
		return nil
	}

	salon, err := uc.staffClient.GetSalon(ctx, booking.SalonID)
	if err != nil {
		if errors.Is(err, staffClient.ErrSalonNotFound) {
			uc.logger.Warn("RescheduleBooking: salon id=%d not found during access check", booking.SalonID)
			return ErrAccessDenied
		}
		uc.logger.Error("RescheduleBooking: failed to get salon id=%d: %v", booking.SalonID, err)
		return fmt.Errorf("%w: failed to check access: %v", ErrInternal, err)
	}
	if !salon.IsManager(userID) {
		uc.logger.Warn("RescheduleBooking: access denied for user=%d to booking id=%d", userID, booking.ID)
		return ErrAccessDenied
	}
	return nil
}
