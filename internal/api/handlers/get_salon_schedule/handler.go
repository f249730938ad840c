package get_salon_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mirelka/SLN-SchedulingService/internal/api/handlers"
	"github.com/mirelka/SLN-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
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

// Handle GET /api/v1/salons/{salonId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем salonId из URL
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/schedule - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.service.GetSalonSchedule(r.Context(), salonID)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("GET /salons/{id}/schedule - Invalid input: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidSalonID)
			return
		}

		h.logger.Error("GET /salons/{id}/schedule - Failed to get schedule: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/schedule - Schedule retrieved successfully: salon_id=%d", salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
