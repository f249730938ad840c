package schedule

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	comboRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/combo"
	scheduleRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/schedule"
	staffClient "github.com/mirelka/SLN-SchedulingService/internal/integrations/staffservice"
	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
	"github.com/mirelka/SLN-SchedulingService/internal/service/schedule/models"
)

// Service сервис для работы с расписанием салона и правилами комбо
type Service struct {
	scheduleRepo ScheduleRepository
	comboRepo    ComboRepository
	staffClient  StaffServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepository ScheduleRepository,
	comboRepository ComboRepository,
	staff StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepository,
		comboRepo:    comboRepository,
		staffClient:  staff,
		logger:       logger,
	}
}

// GetSalonSchedule получает недельное расписание салона вместе с активными комбо
// Салон без настроенных часов не ошибка: отдаются выключенные дни
func (s *Service) GetSalonSchedule(ctx context.Context, salonID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSalonSchedule: fetching schedule for salon=%d", salonID)

	schedule, err := s.scheduleRepo.GetBySalonID(ctx, salonID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		s.logger.Error("GetSalonSchedule: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetSalonSchedule - repository error: %v", ErrInternal, err)
	}

	combos, err := s.comboRepo.GetActiveBySalonID(ctx, salonID)
	if err != nil {
		s.logger.Error("GetSalonSchedule: failed to get combos for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetSalonSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonSchedule: successfully fetched schedule for salon=%d, %d combos", salonID, len(combos))
	return models.FromDomainSchedule(salonID, schedule, combos), nil
}

// UpdateSchedule заменяет недельное расписание салона целиком
// Инварианты каждого дня: открытие строго раньше закрытия, каждый перерыв
// начинается раньше своего конца и лежит целиком внутри рабочего окна.
// Доступно только менеджерам салона
func (s *Service) UpdateSchedule(ctx context.Context, salonID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for salon=%d by user=%d", salonID, req.UserID)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, salonID, req.UserID); err != nil {
		return nil, err
	}

	schedule := req.ToDomainSchedule(salonID)

	// Валидируем все семь дней до записи
	for _, weekday := range []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	} {
		if err := validateDay(schedule.ForWeekday(weekday)); err != nil {
			s.logger.Warn("UpdateSchedule: invalid %s for salon=%d: %v", weekday, salonID, err)
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, weekday, err)
		}
	}

	updated, err := s.scheduleRepo.Upsert(ctx, schedule)
	if err != nil {
		s.logger.Error("UpdateSchedule: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	combos, err := s.comboRepo.GetActiveBySalonID(ctx, salonID)
	if err != nil {
		s.logger.Error("UpdateSchedule: failed to get combos for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for salon=%d", salonID)
	return models.FromDomainSchedule(salonID, updated, combos), nil
}

// CreateCombo создает правило комбо салона
// Доступно только менеджерам салона
func (s *Service) CreateCombo(ctx context.Context, salonID int64, req *models.CreateComboRequest) (*models.ComboResponse, error) {
	s.logger.Info("CreateCombo: creating combo %q for salon=%d by user=%d", req.Name, salonID, req.UserID)

	if err := s.checkManagerAccess(ctx, salonID, req.UserID); err != nil {
		return nil, err
	}

	combo := req.ToDomainCombo(salonID)
	if err := validateCombo(combo); err != nil {
		s.logger.Warn("CreateCombo: invalid combo %q for salon=%d: %v", req.Name, salonID, err)
		return nil, err
	}

	created, err := s.comboRepo.Create(ctx, combo)
	if err != nil {
		s.logger.Error("CreateCombo: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: CreateCombo - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCombo: successfully created combo id=%d for salon=%d", created.ID, salonID)
	response := models.FromDomainCombo(created)
	return &response, nil
}

// SetComboActive включает или выключает правило комбо
// Доступно только менеджерам салона
func (s *Service) SetComboActive(ctx context.Context, salonID, comboID int64, req *models.SetComboActiveRequest) error {
	s.logger.Info("SetComboActive: setting combo id=%d active=%v for salon=%d by user=%d",
		comboID, req.Active, salonID, req.UserID)

	if err := s.checkManagerAccess(ctx, salonID, req.UserID); err != nil {
		return err
	}

	if err := s.comboRepo.SetActive(ctx, comboID, req.Active); err != nil {
		if errors.Is(err, comboRepo.ErrComboNotFound) {
			s.logger.Warn("SetComboActive: combo id=%d not found", comboID)
			return ErrComboNotFound
		}
		s.logger.Error("SetComboActive: repository error for combo id=%d: %v", comboID, err)
		return fmt.Errorf("%w: SetComboActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetComboActive: successfully set combo id=%d active=%v", comboID, req.Active)
	return nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером салона
func (s *Service) checkManagerAccess(ctx context.Context, salonID int64, userID int64) error {
	salon, err := s.staffClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, staffClient.ErrSalonNotFound) {
			s.logger.Warn("checkManagerAccess: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get salon: %v", ErrInternal, err)
	}

	if salon.IsManager(userID) {
		return nil
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of salon=%d", userID, salonID)
	return ErrAccessDenied
}

// validateDay проверяет инварианты одного дня расписания
func validateDay(day domain.DaySchedule) error {
	if !day.Enabled {
		return nil
	}
	if day.OpenTime == nil || day.CloseTime == nil {
		return errors.New("enabled day must have open and close times")
	}

	openMin, err := day.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("invalid open time: %v", err)
	}
	closeMin, err := day.CloseTime.Minutes()
	if err != nil {
		return fmt.Errorf("invalid close time: %v", err)
	}
	if openMin >= closeMin {
		return fmt.Errorf("open time %s must be before close time %s", *day.OpenTime, *day.CloseTime)
	}

	window := scheduling.Span{StartMin: openMin, EndMin: closeMin}
	breaks := make([]scheduling.Span, 0, len(day.Breaks))
	for _, br := range day.Breaks {
		startMin, err := br.Start.Minutes()
		if err != nil {
			return fmt.Errorf("invalid break start: %v", err)
		}
		endMin, err := br.End.Minutes()
		if err != nil {
			return fmt.Errorf("invalid break end: %v", err)
		}
		breaks = append(breaks, scheduling.Span{StartMin: startMin, EndMin: endMin})
	}

	return scheduling.ValidateBreaks(window, breaks)
}

// validateCombo проверяет инварианты правила комбо
func validateCombo(combo *domain.Combo) error {
	if combo.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCombo)
	}
	if len(combo.TriggerServiceTypeIDs) == 0 {
		return fmt.Errorf("%w: trigger service types are required", ErrInvalidCombo)
	}

	// Каждый триггер обязан присутствовать в упорядоченной цепочке
	ordered := make(map[int64]bool, len(combo.OrderedServiceTypeIDs))
	for _, id := range combo.OrderedServiceTypeIDs {
		if id <= 0 {
			return fmt.Errorf("%w: service type ids must be positive", ErrInvalidCombo)
		}
		if ordered[id] {
			return fmt.Errorf("%w: ordered service types must not repeat", ErrInvalidCombo)
		}
		ordered[id] = true
	}
	for _, id := range combo.TriggerServiceTypeIDs {
		if !ordered[id] {
			return fmt.Errorf("%w: trigger service type %d is missing from the ordered chain", ErrInvalidCombo, id)
		}
	}

	for _, step := range combo.AutoSteps {
		if step.ServiceTypeID <= 0 {
			return fmt.Errorf("%w: auto step service type must be positive", ErrInvalidCombo)
		}
		if step.DurationMinutes != nil && *step.DurationMinutes <= 0 {
			return fmt.Errorf("%w: auto step duration override must be positive", ErrInvalidCombo)
		}
		if step.Position != domain.ComboStepPositionEnd {
			if idx, err := strconv.Atoi(step.Position); err != nil || idx < 0 {
				return fmt.Errorf("%w: auto step position must be %q or a non-negative index", ErrInvalidCombo, domain.ComboStepPositionEnd)
			}
		}
	}

	return nil
}
