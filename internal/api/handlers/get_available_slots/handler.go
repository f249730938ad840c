package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mirelka/SLN-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/mirelka/SLN-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgMissingDate    = "дата обязательна"
	msgInvalidParams  = "некорректные параметры запроса"
	msgWorkerNotFound = "мастер не найден"
	msgInvalidDate    = "некорректная дата"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/workers/{workerId}/available-slots
// Query params: date (required, YYYY-MM-DD), durationMinutes (required),
// serviceTypeId, waitMinutes, followUpDurationMinutes, followUpServiceTypeId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем salonId из URL
	salonIDStr := vars["salonId"]
	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/workers/{id}/available-slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	workerID := vars["workerId"]

	// Извлекаем date из query параметров
	if r.URL.Query().Get("date") == "" {
		h.logger.Warn("GET /salons/{id}/workers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты и длительностей)
	useCaseReq, err := ToUseCaseRequest(salonID, workerID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /salons/{id}/workers/{id}/available-slots - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrWorkerNotFound):
			h.logger.Warn("GET /salons/{id}/workers/{id}/available-slots - Worker not found: salon_id=%d, worker_id=%s",
				salonID, workerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /salons/{id}/workers/{id}/available-slots - Invalid date: salon_id=%d, worker_id=%s",
				salonID, workerID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/workers/{id}/available-slots - Invalid input: salon_id=%d, worker_id=%s, error=%v",
				salonID, workerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /salons/{id}/workers/{id}/available-slots - Failed to get slots: salon_id=%d, worker_id=%s, error=%v",
				salonID, workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{id}/workers/{id}/available-slots - Slots retrieved successfully: salon_id=%d, worker_id=%s, available=%t, slots_count=%d",
		salonID, workerID, result.Available, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
