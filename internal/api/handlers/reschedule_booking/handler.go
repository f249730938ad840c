package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mirelka/SLN-SchedulingService/internal/api/handlers"
	"github.com/mirelka/SLN-SchedulingService/internal/api/middleware"
	rescheduleBooking "github.com/mirelka/SLN-SchedulingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgNotFound            = "бронирование не найдено"
	msgSegmentNotFound     = "у записи нет такого сегмента"
	msgForbidden           = "доступ запрещен"
	msgCannotReschedule    = "запись нельзя перенести"
	msgInvalidBookingDate  = "некорректная дата записи"
	msgTooLateToBook       = "слишком поздно для переноса на это время"
	msgOutsideWorkingHours = "выбранное время вне рабочих часов"
	msgBreakOverlap        = "выбранное время пересекается с перерывом"
	msgSlotConflict        = "выбранное время уже занято"
	msgSegmentOrder        = "вторая фаза не может начинаться раньше конца первой"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrSegmentNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Segment not found: booking_id=%d, phase=%d", bookingID, req.Phase)
			handlers.RespondNotFound(w, msgSegmentNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Cannot reschedule: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid date: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Too late: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleBooking.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Outside working hours: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleBooking.ErrBreakOverlap):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Break overlap: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgBreakOverlap)

		case errors.Is(err, rescheduleBooking.ErrSlotConflict):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleBooking.ErrSegmentOrderViolation):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Segment order violation: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSegmentOrder)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Segment moved: booking_id=%d, phase=%d, user_id=%d",
		bookingID, result.Phase, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
