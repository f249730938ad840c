package create_recurring_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
	"github.com/mirelka/SLN-SchedulingService/internal/usecase/create_booking"
	"github.com/mirelka/SLN-SchedulingService/pkg/ptr"
)

// UseCase use case для создания еженедельной серии записей
type UseCase struct {
	creator BookingCreator
	logger  Logger
	limits  scheduling.Limits
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(creator BookingCreator, logger Logger, limits scheduling.Limits) *UseCase {
	return &UseCase{
		creator: creator,
		logger:  logger,
		limits:  limits.Normalized(),
	}
}

// Execute выполняет use case создания серии
// Правило сперва валидируется строго (count вне [1, потолок] — ошибка),
// затем разворачивается в конкретные даты. Каждое повторение создается
// отдельно: провал одной даты фиксируется в результате и не трогает
// уже созданные записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringBooking: salon=%d, client=%d, worker=%s, mode=%s, start=%s",
		req.SalonID, req.ClientID, req.WorkerID, req.Rule.Mode, req.Rule.StartDate.Format(domain.DateFormat))

	ceiling := uc.limits.MaxRecurrenceOccurrences

	// 1. Строгая валидация правила
	if err := scheduling.ValidateRecurrenceRule(req.Rule, ceiling); err != nil {
		uc.logger.Warn("CreateRecurringBooking: rule validation failed: %v", err)
		switch {
		case errors.Is(err, scheduling.ErrTooManyOccurrences):
			return nil, fmt.Errorf("%w: %v", ErrTooManyOccurrences, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
	}

	// 2. Развертывание правила в конкретные даты
	expanded, err := scheduling.ExpandWeekly(req.Rule, ceiling)
	if err != nil {
		uc.logger.Warn("CreateRecurringBooking: rule expansion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if expanded.Truncated {
		uc.logger.Warn("CreateRecurringBooking: series truncated to ceiling of %d occurrences", ceiling)
	}

	// 3. Создание повторений по одному
	response := &Response{
		Requested: len(expanded.Dates),
		Truncated: expanded.Truncated,
		Results:   make([]OccurrenceResult, 0, len(expanded.Dates)),
	}

	for _, occurrence := range expanded.Dates {
		result := OccurrenceResult{Date: occurrence}

		created, err := uc.creator.Execute(ctx, &create_booking.Request{
			SalonID:                 req.SalonID,
			ClientID:                req.ClientID,
			WorkerID:                req.WorkerID,
			Date:                    occurrence,
			StartTime:               req.Rule.TimeOfDay,
			ServiceTypeIDs:          req.ServiceTypeIDs,
			ServiceName:             req.ServiceName,
			PrimaryDurationMinutes:  req.PrimaryDurationMinutes,
			WaitMinutes:             req.WaitMinutes,
			FollowUpDurationMinutes: req.FollowUpDurationMinutes,
			FollowUpServiceTypeID:   req.FollowUpServiceTypeID,
			Notes:                   req.Notes,
		})

		if err != nil {
			uc.logger.Warn("CreateRecurringBooking: occurrence %s failed: %v",
				occurrence.Format(domain.DateFormat), err)
			result.Error = err.Error()
			response.Failed++
		} else {
			result.BookingID = ptr.Ptr(created.BookingID)
			response.Succeeded++
		}

		response.Results = append(response.Results, result)
	}

	uc.logger.Info("CreateRecurringBooking: series done, %d/%d succeeded",
		response.Succeeded, response.Requested)

	return response, nil
}
