package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/pkg/dbmetrics"
	"github.com/mirelka/SLN-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с рабочими часами салонов
// Недельное расписание хранится одной строкой на салон, дни — в JSONB-колонках
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySalonID получает недельное расписание салона
func (r *Repository) GetBySalonID(ctx context.Context, salonID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"monday",
		"tuesday",
		"wednesday",
		"thursday",
		"friday",
		"saturday",
		"sunday",
		"created_at",
		"updated_at",
	).
		From("salon_schedules").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.WeeklySchedule
	var days [7]dayJSON
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.SalonID,
		&days[0],
		&days[1],
		&days[2],
		&days[3],
		&days[4],
		&days[5],
		&days[6],
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - scan schedule: %v", ErrScanRow, err)
	}

	schedule.Monday = days[0].toDomain()
	schedule.Tuesday = days[1].toDomain()
	schedule.Wednesday = days[2].toDomain()
	schedule.Thursday = days[3].toDomain()
	schedule.Friday = days[4].toDomain()
	schedule.Saturday = days[5].toDomain()
	schedule.Sunday = days[6].toDomain()
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// Upsert создает или заменяет недельное расписание салона
// Расписание заменяется целиком: частичных обновлений по дням нет
func (r *Repository) Upsert(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salon_schedules").
		Columns(
			"salon_id",
			"monday",
			"tuesday",
			"wednesday",
			"thursday",
			"friday",
			"saturday",
			"sunday",
		).
		Values(
			schedule.SalonID,
			dayFromDomain(schedule.Monday),
			dayFromDomain(schedule.Tuesday),
			dayFromDomain(schedule.Wednesday),
			dayFromDomain(schedule.Thursday),
			dayFromDomain(schedule.Friday),
			dayFromDomain(schedule.Saturday),
			dayFromDomain(schedule.Sunday),
		).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE SET
			monday = EXCLUDED.monday,
			tuesday = EXCLUDED.tuesday,
			wednesday = EXCLUDED.wednesday,
			thursday = EXCLUDED.thursday,
			friday = EXCLUDED.friday,
			saturday = EXCLUDED.saturday,
			sunday = EXCLUDED.sunday,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// Delete удаляет расписание салона
func (r *Repository) Delete(ctx context.Context, salonID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("salon_schedules").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}
