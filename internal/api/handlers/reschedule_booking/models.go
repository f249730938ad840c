package reschedule_booking

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	rescheduleBooking "github.com/mirelka/SLN-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Phase     int    `json:"phase"` // 1 — основной сегмент, 2 — follow-up
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	BookingID       int64  `json:"bookingId"`
	SegmentID       int64  `json:"segmentId"`
	Phase           int    `json:"phase"`
	WorkerID        string `json:"workerId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Phase:     r.Phase,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		BookingID:       resp.BookingID,
		SegmentID:       resp.SegmentID,
		Phase:           resp.Phase,
		WorkerID:        resp.WorkerID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
	}
}
