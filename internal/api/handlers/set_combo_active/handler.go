package set_combo_active

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
	msgInvalidComboID     = "некорректный ID комбо"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgSalonNotFound      = "салон не найден"
	msgComboNotFound      = "правило комбо не найдено"
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

// Handle PATCH /api/v1/salons/{salonId}/combos/{comboId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /salons/{id}/combos/{id} - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /salons/{id}/combos/{id} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	comboID, err := strconv.ParseInt(vars["comboId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /salons/{id}/combos/{id} - Invalid combo ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidComboID)
		return
	}

	// Декодируем body
	var req models.SetComboActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /salons/{id}/combos/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	// Переключаем правило комбо (сервис сам проверит права менеджера)
	if err := h.service.SetComboActive(r.Context(), salonID, comboID, &req); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSalonNotFound):
			h.logger.Warn("PATCH /salons/{id}/combos/{id} - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, schedule.ErrComboNotFound):
			h.logger.Warn("PATCH /salons/{id}/combos/{id} - Combo not found: salon_id=%d, combo_id=%d",
				salonID, comboID)
			handlers.RespondNotFound(w, msgComboNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PATCH /salons/{id}/combos/{id} - Access denied: salon_id=%d, user_id=%d",
				salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PATCH /salons/{id}/combos/{id} - Invalid input: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /salons/{id}/combos/{id} - Failed to toggle combo: salon_id=%d, combo_id=%d, error=%v",
				salonID, comboID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /salons/{id}/combos/{id} - Combo toggled successfully: salon_id=%d, combo_id=%d, active=%t, user_id=%d",
		salonID, comboID, req.Active, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
