package create_booking

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	createBooking "github.com/mirelka/SLN-SchedulingService/internal/usecase/create_booking"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID        int64   `json:"salonId"`
	WorkerID       string  `json:"workerId"`
	BookingDate    string  `json:"bookingDate"` // "2026-09-15"
	StartTime      string  `json:"startTime"`   // "10:00"
	ServiceTypeIDs []int64 `json:"serviceTypeIds"`
	ServiceName    string  `json:"serviceName,omitempty"`

	PrimaryDurationMinutes  int    `json:"primaryDurationMinutes"`
	WaitMinutes             int    `json:"waitMinutes,omitempty"`
	FollowUpDurationMinutes int    `json:"followUpDurationMinutes,omitempty"`
	FollowUpServiceTypeID   *int64 `json:"followUpServiceTypeId,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// SegmentResponse HTTP модель одного сегмента записи
type SegmentResponse struct {
	ID              int64  `json:"id"`
	WorkerID        string `json:"workerId"`
	WorkerName      string `json:"workerName,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Phase           int    `json:"phase"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64            `json:"id"`
	SalonID     int64            `json:"salonId"`
	ClientID    int64            `json:"clientId"`
	Status      string           `json:"status"`
	Primary     SegmentResponse  `json:"primary"`
	FollowUp    *SegmentResponse `json:"followUp,omitempty"`
	WaitMinutes int              `json:"waitMinutes"`
	ComboID     *int64           `json:"comboId,omitempty"`
	ComboName   *string          `json:"comboName,omitempty"`
	ServiceName string           `json:"serviceName"`
	Notes       *string          `json:"notes,omitempty"`
	CreatedAt   string           `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		SalonID:                 r.SalonID,
		ClientID:                userID,
		WorkerID:                r.WorkerID,
		Date:                    bookingDate,
		StartTime:               startTime,
		ServiceTypeIDs:          r.ServiceTypeIDs,
		ServiceName:             r.ServiceName,
		PrimaryDurationMinutes:  r.PrimaryDurationMinutes,
		WaitMinutes:             r.WaitMinutes,
		FollowUpDurationMinutes: r.FollowUpDurationMinutes,
		FollowUpServiceTypeID:   r.FollowUpServiceTypeID,
		Notes:                   r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	response := &BookingResponse{
		ID:          resp.BookingID,
		SalonID:     resp.SalonID,
		ClientID:    resp.ClientID,
		Status:      resp.Status,
		Primary:     fromSegment(resp.Primary),
		WaitMinutes: resp.WaitMinutes,
		ComboID:     resp.ComboID,
		ComboName:   resp.ComboName,
		ServiceName: resp.ServiceName,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.FollowUp != nil {
		followUp := fromSegment(*resp.FollowUp)
		response.FollowUp = &followUp
	}
	return response
}

func fromSegment(segment createBooking.SegmentResponse) SegmentResponse {
	return SegmentResponse{
		ID:              segment.ID,
		WorkerID:        segment.WorkerID,
		WorkerName:      segment.WorkerName,
		Date:            segment.Date.Format(domain.DateFormat),
		StartTime:       segment.StartTime.String(),
		DurationMinutes: segment.DurationMinutes,
		Phase:           segment.Phase,
	}
}
