package create_recurring_booking

import (
	"errors"
	"net/http"

	"github.com/mirelka/SLN-SchedulingService/internal/api/handlers"
	"github.com/mirelka/SLN-SchedulingService/internal/api/middleware"
	createRecurring "github.com/mirelka/SLN-SchedulingService/internal/usecase/create_recurring_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRule        = "некорректное правило повторения"
	msgTooManyOccurrences = "запрошено слишком много повторений"
)

type Handler struct {
	useCase CreateRecurringBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateRecurringBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/recurring
// Частичный провал серии не является ошибкой запроса: ответ всегда 200
// с по-датной разбивкой результатов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/recurring - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRecurringBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings/recurring - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRule)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRecurring.ErrTooManyOccurrences):
			h.logger.Warn("POST /bookings/recurring - Too many occurrences: user_id=%d, salon_id=%d", userID, req.SalonID)
			handlers.RespondBadRequest(w, msgTooManyOccurrences)

		case errors.Is(err, createRecurring.ErrInvalidRule), errors.Is(err, createRecurring.ErrInvalidInput):
			h.logger.Warn("POST /bookings/recurring - Invalid rule: user_id=%d, salon_id=%d, error=%v", userID, req.SalonID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("POST /bookings/recurring - Failed to create series: user_id=%d, salon_id=%d, error=%v",
				userID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/recurring - Series processed: user_id=%d, salon_id=%d, succeeded=%d/%d",
		userID, req.SalonID, result.Succeeded, result.Requested)
	handlers.RespondJSON(w, http.StatusOK, response)
}
