package models

import (
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/pkg/types"
)

// Request модели

// BreakDTO перерыв внутри рабочего дня
type BreakDTO struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DayScheduleDTO расписание на один день недели
type DayScheduleDTO struct {
	Enabled   bool              `json:"enabled"`
	OpenTime  *types.TimeString `json:"openTime,omitempty"`
	CloseTime *types.TimeString `json:"closeTime,omitempty"`
	Breaks    []BreakDTO        `json:"breaks,omitempty"`
}

// UpdateScheduleRequest запрос на замену недельного расписания салона
type UpdateScheduleRequest struct {
	UserID    int64          `json:"userId"`
	Monday    DayScheduleDTO `json:"monday"`
	Tuesday   DayScheduleDTO `json:"tuesday"`
	Wednesday DayScheduleDTO `json:"wednesday"`
	Thursday  DayScheduleDTO `json:"thursday"`
	Friday    DayScheduleDTO `json:"friday"`
	Saturday  DayScheduleDTO `json:"saturday"`
	Sunday    DayScheduleDTO `json:"sunday"`
}

// AutoStepDTO авто-вставляемый шаг комбо
type AutoStepDTO struct {
	ServiceTypeID   int64  `json:"serviceTypeId"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	Position        string `json:"position"`
}

// CreateComboRequest запрос на создание правила комбо
type CreateComboRequest struct {
	UserID                int64         `json:"userId"`
	Name                  string        `json:"name"`
	TriggerServiceTypeIDs []int64       `json:"triggerServiceTypeIds"`
	OrderedServiceTypeIDs []int64       `json:"orderedServiceTypeIds"`
	AutoSteps             []AutoStepDTO `json:"autoSteps,omitempty"`
}

// SetComboActiveRequest запрос на включение/выключение правила комбо
type SetComboActiveRequest struct {
	UserID int64 `json:"userId"`
	Active bool  `json:"active"`
}

// Response модели

// ComboResponse ответ с данными правила комбо
type ComboResponse struct {
	ID                    int64         `json:"id"`
	Name                  string        `json:"name"`
	Active                bool          `json:"active"`
	TriggerServiceTypeIDs []int64       `json:"triggerServiceTypeIds"`
	OrderedServiceTypeIDs []int64       `json:"orderedServiceTypeIds"`
	AutoSteps             []AutoStepDTO `json:"autoSteps,omitempty"`
}

// ScheduleResponse ответ с недельным расписанием и правилами комбо салона
type ScheduleResponse struct {
	SalonID   int64          `json:"salonId"`
	Monday    DayScheduleDTO `json:"monday"`
	Tuesday   DayScheduleDTO `json:"tuesday"`
	Wednesday DayScheduleDTO `json:"wednesday"`
	Thursday  DayScheduleDTO `json:"thursday"`
	Friday    DayScheduleDTO `json:"friday"`
	Saturday  DayScheduleDTO `json:"saturday"`
	Sunday    DayScheduleDTO `json:"sunday"`

	Combos []ComboResponse `json:"combos"`

	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// ToDomain конвертирует дневной DTO в domain модель
func (d DayScheduleDTO) ToDomain() domain.DaySchedule {
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

// ToDomainSchedule конвертирует request в domain модель недельного расписания
func (r *UpdateScheduleRequest) ToDomainSchedule(salonID int64) *domain.WeeklySchedule {
	return &domain.WeeklySchedule{
		SalonID:   salonID,
		Monday:    r.Monday.ToDomain(),
		Tuesday:   r.Tuesday.ToDomain(),
		Wednesday: r.Wednesday.ToDomain(),
		Thursday:  r.Thursday.ToDomain(),
		Friday:    r.Friday.ToDomain(),
		Saturday:  r.Saturday.ToDomain(),
		Sunday:    r.Sunday.ToDomain(),
	}
}

// ToDomainCombo конвертирует request в domain модель комбо
func (r *CreateComboRequest) ToDomainCombo(salonID int64) *domain.Combo {
	combo := &domain.Combo{
		SalonID:               salonID,
		Name:                  r.Name,
		Active:                true,
		TriggerServiceTypeIDs: r.TriggerServiceTypeIDs,
		OrderedServiceTypeIDs: r.OrderedServiceTypeIDs,
	}
	for _, step := range r.AutoSteps {
		combo.AutoSteps = append(combo.AutoSteps, domain.ComboAutoStep{
			ServiceTypeID:   step.ServiceTypeID,
			DurationMinutes: step.DurationMinutes,
			Position:        step.Position,
		})
	}
	return combo
}

// FromDomainDay конвертирует дневную domain модель в DTO
func FromDomainDay(day domain.DaySchedule) DayScheduleDTO {
	dto := DayScheduleDTO{
		Enabled:   day.Enabled,
		OpenTime:  day.OpenTime,
		CloseTime: day.CloseTime,
	}
	for _, br := range day.Breaks {
		dto.Breaks = append(dto.Breaks, BreakDTO{Start: br.Start, End: br.End})
	}
	return dto
}

// FromDomainCombo конвертирует domain модель комбо в DTO
func FromDomainCombo(combo *domain.Combo) ComboResponse {
	resp := ComboResponse{
		ID:                    combo.ID,
		Name:                  combo.Name,
		Active:                combo.Active,
		TriggerServiceTypeIDs: combo.TriggerServiceTypeIDs,
		OrderedServiceTypeIDs: combo.OrderedServiceTypeIDs,
	}
	for _, step := range combo.AutoSteps {
		resp.AutoSteps = append(resp.AutoSteps, AutoStepDTO{
			ServiceTypeID:   step.ServiceTypeID,
			DurationMinutes: step.DurationMinutes,
			Position:        step.Position,
		})
	}
	return resp
}

// FromDomainSchedule собирает ответ из расписания и списка комбо
// schedule может быть nil: салон без настроенных часов отдается с выключенными днями
func FromDomainSchedule(salonID int64, schedule *domain.WeeklySchedule, combos []*domain.Combo) *ScheduleResponse {
	resp := &ScheduleResponse{
		SalonID: salonID,
		Combos:  make([]ComboResponse, 0, len(combos)),
	}

	if schedule != nil {
		resp.Monday = FromDomainDay(schedule.Monday)
		resp.Tuesday = FromDomainDay(schedule.Tuesday)
		resp.Wednesday = FromDomainDay(schedule.Wednesday)
		resp.Thursday = FromDomainDay(schedule.Thursday)
		resp.Friday = FromDomainDay(schedule.Friday)
		resp.Saturday = FromDomainDay(schedule.Saturday)
		resp.Sunday = FromDomainDay(schedule.Sunday)
		if !schedule.UpdatedAt.IsZero() {
			updatedAt := schedule.UpdatedAt
			resp.UpdatedAt = &updatedAt
		}
	}

	for _, combo := range combos {
		resp.Combos = append(resp.Combos, FromDomainCombo(combo))
	}

	return resp
}
