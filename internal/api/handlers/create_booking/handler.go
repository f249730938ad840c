package create_booking

import (
	"errors"
	"net/http"

	"github.com/mirelka/SLN-SchedulingService/internal/api/handlers"
	"github.com/mirelka/SLN-SchedulingService/internal/api/middleware"
	createBooking "github.com/mirelka/SLN-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgWorkerNotFound      = "мастер не найден"
	msgWorkerInactive      = "мастер не принимает записи"
	msgWorkerNotQualified  = "мастер не выполняет выбранную услугу"
	msgInvalidBookingDate  = "некорректная дата записи"
	msgTooLateToBook       = "слишком поздно для записи на это время"
	msgOutsideWorkingHours = "выбранное время вне рабочих часов"
	msgBreakOverlap        = "выбранное время пересекается с перерывом"
	msgSlotConflict        = "выбранное время уже занято"
	msgNoEligibleWorker    = "нет свободного мастера для второй фазы услуги"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrWorkerNotFound):
			h.logger.Warn("POST /bookings - Worker not found: worker_id=%s, salon_id=%d", req.WorkerID, req.SalonID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, createBooking.ErrWorkerInactive):
			h.logger.Warn("POST /bookings - Worker inactive: worker_id=%s, salon_id=%d", req.WorkerID, req.SalonID)
			handlers.RespondBadRequest(w, msgWorkerInactive)

		case errors.Is(err, createBooking.ErrWorkerNotQualified):
			h.logger.Warn("POST /bookings - Worker not qualified: worker_id=%s, salon_id=%d", req.WorkerID, req.SalonID)
			handlers.RespondBadRequest(w, msgWorkerNotQualified)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrBreakOverlap):
			h.logger.Warn("POST /bookings - Break overlap: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondConflict(w, msgBreakOverlap)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrNoEligibleWorker):
			h.logger.Warn("POST /bookings - No eligible follow-up worker: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondConflict(w, msgNoEligibleWorker)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, salon_id=%d, error=%v", userID, req.SalonID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, salon_id=%d, error=%v",
				userID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, salon_id=%d",
		result.BookingID, userID, req.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
