package staffservice

import (
	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// BreakPayload перерыв внутри рабочего дня в ответе StaffService
type BreakPayload struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DayPayload расписание на один день недели в ответе StaffService
type DayPayload struct {
	Enabled   bool              `json:"enabled"`
	OpenTime  *types.TimeString `json:"openTime,omitempty"`
	CloseTime *types.TimeString `json:"closeTime,omitempty"`
	Breaks    []BreakPayload    `json:"breaks,omitempty"`
}

// WeekPayload недельное расписание в ответе StaffService
type WeekPayload struct {
	Monday    DayPayload `json:"monday"`
	Tuesday   DayPayload `json:"tuesday"`
	Wednesday DayPayload `json:"wednesday"`
	Thursday  DayPayload `json:"thursday"`
	Friday    DayPayload `json:"friday"`
	Saturday  DayPayload `json:"saturday"`
	Sunday    DayPayload `json:"sunday"`
}

// WorkerPayload модель мастера из StaffService
type WorkerPayload struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	ServiceTypeIDs []int64     `json:"serviceTypeIds"`
	Active         bool        `json:"active"`
	Availability   WeekPayload `json:"availability"`
}

// SalonPayload модель салона из StaffService
type SalonPayload struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ManagerIDs []int64 `json:"managerIds"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain преобразует дневное расписание в доменную модель
func (d DayPayload) ToDomain() domain.DaySchedule {
	day := domain.DaySchedule{
		Enabled:   d.Enabled,
		OpenTime:  d.OpenTime,
		CloseTime: d.CloseTime,
	}
	for _, br := range d.Breaks {
		day.Breaks = append(day.Breaks, domain.BreakRange{Start: br.Start, End: br.End})
	}
	return day
}

// ToDomain преобразует недельное расписание в доменную модель
func (w WeekPayload) ToDomain() domain.WeeklySchedule {
	return domain.WeeklySchedule{
		Monday:    w.Monday.ToDomain(),
		Tuesday:   w.Tuesday.ToDomain(),
		Wednesday: w.Wednesday.ToDomain(),
		Thursday:  w.Thursday.ToDomain(),
		Friday:    w.Friday.ToDomain(),
		Saturday:  w.Saturday.ToDomain(),
		Sunday:    w.Sunday.ToDomain(),
	}
}

// ToDomain преобразует салон в доменную модель
func (s SalonPayload) ToDomain() *domain.Salon {
	return &domain.Salon{
		ID:         s.ID,
		Name:       s.Name,
		ManagerIDs: s.ManagerIDs,
	}
}

// ToDomain преобразует мастера в доменную модель
func (w WorkerPayload) ToDomain() *domain.Worker {
	return &domain.Worker{
		ID:             w.ID,
		Name:           w.Name,
		ServiceTypeIDs: w.ServiceTypeIDs,
		Active:         w.Active,
		Availability:   w.Availability.ToDomain(),
	}
}
