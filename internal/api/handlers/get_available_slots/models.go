package get_available_slots

import (
	"net/url"
	"strconv"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	getAvailableSlots "github.com/mirelka/SLN-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	SalonID   int64           `json:"salonId"`
	WorkerID  string          `json:"workerId"`
	Date      string          `json:"date"`
	Available bool            `json:"available"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		SalonID:   resp.SalonID,
		WorkerID:  resp.WorkerID,
		Date:      resp.Date.Format(domain.DateFormat),
		Available: resp.Available,
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(salonID int64, workerID string, query url.Values) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		SalonID:  salonID,
		WorkerID: workerID,
		Date:     date,
	}

	if req.PrimaryDurationMinutes, err = strconv.Atoi(query.Get("durationMinutes")); err != nil {
		return nil, err
	}

	if v := query.Get("serviceTypeId"); v != "" {
		if req.ServiceTypeID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, err
		}
	}

	if v := query.Get("waitMinutes"); v != "" {
		if req.WaitMinutes, err = strconv.Atoi(v); err != nil {
			return nil, err
		}
	}

	if v := query.Get("followUpDurationMinutes"); v != "" {
		if req.FollowUpDurationMinutes, err = strconv.Atoi(v); err != nil {
			return nil, err
		}
	}

	if v := query.Get("followUpServiceTypeId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.FollowUpServiceTypeID = &id
	}

	return req, nil
}
