package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	bookingRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/booking"
	staffClient "github.com/mirelka/SLN-SchedulingService/internal/integrations/staffservice"
	"github.com/mirelka/SLN-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	staffClient StaffServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepository BookingRepository,
	staff StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepository,
		staffClient: staff,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с follow-up сегментом
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является менеджером салона
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	if booking.IsFollowUpSegment() {
		s.logger.Warn("GetByID: id=%d references a follow-up segment, not a booking", id)
		return nil, ErrBookingNotFound
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	response := models.FromDomainBooking(booking)

	// Подтягиваем follow-up сегмент двухфазной записи
	if booking.HasFollowUp() {
		child, err := s.bookingRepo.GetByParentID(ctx, booking.ID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Error("GetByID: repository error for follow-up of booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}
		response.FollowUp = models.FromDomainSegment(child)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return response, nil
}

// GetClientBookings получает историю бронирований клиента
// Клиент видит только собственную историю; в списке отдаются основные сегменты
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	if req.ClientID != req.UserID {
		s.logger.Warn("GetClientBookings: access denied for user=%d to client=%d history", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSalonBookings получает бронирования салона с гибкой фильтрацией
// Поддерживает фильтрацию по мастеру, периоду, статусу и включению неактивных
// или архивированных записей. Доступно только менеджерам салона
//
// Примеры использования:
// - Все активные бронирования: GetSalonBookings(ctx, &GetSalonBookingsRequest{SalonID: 123, UserID: 456})
// - Записи одного мастера: указать WorkerID
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Записи за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetSalonBookings: fetching bookings for salon=%d, user=%d", req.SalonID, req.UserID)
	if req.WorkerID != nil {
		logMsg += fmt.Sprintf(", worker=%s", *req.WorkerID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: successfully fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование целиком
// Отмена каскадная: follow-up сегмент отменяется вместе с основным в одной
// транзакции, осиротевших phase=2 записей не остается.
// Клиент может отменить только своё бронирование, менеджер - любое в салоне
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	if booking.IsFollowUpSegment() {
		s.logger.Warn("Cancel: id=%d references a follow-up segment, not a booking", bookingID)
		return ErrBookingNotFound
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return err
	}

	// Отменяем оба сегмента в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Cancel(txCtx, booking.ID, req.CancellationReason); err != nil {
			return fmt.Errorf("cancel primary segment: %w", err)
		}

		child, err := s.bookingRepo.GetByParentID(txCtx, booking.ID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return nil
			}
			return fmt.Errorf("get follow-up segment: %w", err)
		}
		if child.IsCancelled() {
			return nil
		}
		if err := s.bookingRepo.Cancel(txCtx, child.ID, req.CancellationReason); err != nil {
			return fmt.Errorf("cancel follow-up segment: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Статус двухфазной записи общий: follow-up сегмент обновляется вместе
// с основным. Доступно только менеджерам салона
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}
	if booking.IsFollowUpSegment() {
		s.logger.Warn("UpdateStatus: id=%d references a follow-up segment, not a booking", bookingID)
		return ErrBookingNotFound
	}

	// Проверяем права доступа (только менеджер салона)
	if err := s.checkManagerAccess(ctx, booking.SalonID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем оба сегмента в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, newStatus); err != nil {
			return fmt.Errorf("update primary segment: %w", err)
		}

		child, err := s.bookingRepo.GetByParentID(txCtx, booking.ID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return nil
			}
			return fmt.Errorf("get follow-up segment: %w", err)
		}
		if err := s.bookingRepo.UpdateStatus(txCtx, child.ID, newStatus); err != nil {
			return fmt.Errorf("update follow-up segment: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateStatus: failed to update booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он менеджер салона
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if booking.ClientID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером салона
	if err := s.checkManagerAccess(ctx, booking.SalonID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером салона
func (s *Service) checkManagerAccess(ctx context.Context, salonID int64, userID int64) error {
	// Получаем салон через StaffService
	salon, err := s.staffClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, staffClient.ErrSalonNotFound) {
			s.logger.Warn("checkManagerAccess: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get salon: %v", ErrInternal, err)
	}

	// Проверяем, что userID в списке менеджеров
	if salon.IsManager(userID) {
		s.logger.Info("checkManagerAccess: user=%d is manager of salon=%d", userID, salonID)
		return nil
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of salon=%d", userID, salonID)
	return ErrAccessDenied
}
