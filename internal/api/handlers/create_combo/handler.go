package create_combo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mirelka/SLN-SchedulingService/internal/api/handlers"
	"github.com/mirelka/SLN-SchedulingService/internal/api/middleware"
	"github.com/mirelka/SLN-SchedulingService/internal/service/schedule"
	"github.com/mirelka/SLN-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgSalonNotFound      = "салон не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/combos
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/combos - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем salonId из URL
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/combos - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Декодируем body
	var req models.CreateComboRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/combos - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	// Создаем правило комбо (сервис сам проверит права менеджера)
	result, err := h.service.CreateCombo(r.Context(), salonID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/combos - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /salons/{id}/combos - Access denied: salon_id=%d, user_id=%d",
				salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidCombo), errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/combos - Invalid combo: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /salons/{id}/combos - Failed to create combo: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/combos - Combo created successfully: salon_id=%d, combo_id=%d, user_id=%d",
		salonID, result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
