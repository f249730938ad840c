package create_recurring_booking

import (
	"fmt"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	createRecurring "github.com/mirelka/SLN-SchedulingService/internal/usecase/create_recurring_booking"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// RecurrenceRuleDTO правило еженедельного повторения в HTTP запросе
type RecurrenceRuleDTO struct {
	StartDate string  `json:"startDate"` // "2026-09-15"
	TimeOfDay string  `json:"timeOfDay"` // "10:00"
	Mode      string  `json:"mode"`      // "endDate" | "count"
	EndDate   *string `json:"endDate,omitempty"`
	Count     *int    `json:"count,omitempty"`
}

// CreateRecurringBookingRequest HTTP request model
type CreateRecurringBookingRequest struct {
	SalonID  int64             `json:"salonId"`
	WorkerID string            `json:"workerId"`
	Rule     RecurrenceRuleDTO `json:"rule"`

	ServiceTypeIDs []int64 `json:"serviceTypeIds"`
	ServiceName    string  `json:"serviceName,omitempty"`

	PrimaryDurationMinutes  int    `json:"primaryDurationMinutes"`
	WaitMinutes             int    `json:"waitMinutes,omitempty"`
	FollowUpDurationMinutes int    `json:"followUpDurationMinutes,omitempty"`
	FollowUpServiceTypeID   *int64 `json:"followUpServiceTypeId,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// OccurrenceResultDTO результат одного повторения в HTTP ответе
type OccurrenceResultDTO struct {
	Date      string `json:"date"`
	BookingID *int64 `json:"bookingId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// RecurringBookingResponse HTTP response model
type RecurringBookingResponse struct {
	Requested int                   `json:"requested"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
	Truncated bool                  `json:"truncated"`
	Results   []OccurrenceResultDTO `json:"results"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRecurringBookingRequest) ToUseCaseRequest(userID int64) (*createRecurring.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.Rule.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %v", err)
	}
	timeOfDay, err := types.NewTimeStringFromString(r.Rule.TimeOfDay)
	if err != nil {
		return nil, fmt.Errorf("invalid time of day: %v", err)
	}

	rule := domain.RecurrenceRule{
		StartDate: startDate,
		TimeOfDay: timeOfDay,
		Mode:      domain.RecurrenceMode(r.Rule.Mode),
		Count:     r.Rule.Count,
	}
	if r.Rule.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.Rule.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %v", err)
		}
		rule.EndDate = &endDate
	}

	return &createRecurring.Request{
		SalonID:                 r.SalonID,
		ClientID:                userID,
		WorkerID:                r.WorkerID,
		Rule:                    rule,
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
func FromUseCaseResponse(resp *createRecurring.Response) *RecurringBookingResponse {
	response := &RecurringBookingResponse{
		Requested: resp.Requested,
		Succeeded: resp.Succeeded,
		Failed:    resp.Failed,
		Truncated: resp.Truncated,
		Results:   make([]OccurrenceResultDTO, 0, len(resp.Results)),
	}
	for _, result := range resp.Results {
		response.Results = append(response.Results, OccurrenceResultDTO{
			Date:      result.Date.Format(domain.DateFormat),
			BookingID: result.BookingID,
			Error:     result.Error,
		})
	}
	return response
}
