package combo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/pkg/dbmetrics"
	"github.com/mirelka/SLN-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с правилами комбо
// Списки ID услуг хранятся в int8[]-колонках, авто-шаги — в JSONB
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комбо
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveBySalonID получает активные правила комбо салона
// Используется при создании записи для сопоставления выбора клиента
func (r *Repository) GetActiveBySalonID(ctx context.Context, salonID int64) ([]*domain.Combo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"name",
		"active",
		"trigger_service_type_ids",
		"ordered_service_type_ids",
		"auto_steps",
		"created_at",
		"updated_at",
	).
		From("salon_combos").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySalonID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySalonID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	combos := make([]*domain.Combo, 0)
	for rows.Next() {
		combo, err := scanCombo(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveBySalonID - scan row: %v", ErrScanRow, err)
		}
		combos = append(combos, combo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySalonID - rows error: %v", ErrScanRow, err)
	}

	return combos, nil
}

// Create создает правило комбо
func (r *Repository) Create(ctx context.Context, combo *domain.Combo) (*domain.Combo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	autoSteps, err := json.Marshal(combo.AutoSteps)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrMarshalSteps, err)
	}

	query, args, err := psqlbuilder.Insert("salon_combos").
		Columns(
			"salon_id",
			"name",
			"active",
			"trigger_service_type_ids",
			"ordered_service_type_ids",
			"auto_steps",
		).
		Values(
			combo.SalonID,
			combo.Name,
			combo.Active,
			pq.Array(combo.TriggerServiceTypeIDs),
			pq.Array(combo.OrderedServiceTypeIDs),
			autoSteps,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&combo.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	combo.CreatedAt = createdAt.Time
	combo.UpdatedAt = updatedAt.Time

	return combo, nil
}

// SetActive включает или выключает правило комбо
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salon_combos").
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrComboNotFound
	}

	return nil
}

func scanCombo(rows *sql.Rows) (*domain.Combo, error) {
	var combo domain.Combo
	var trigger, ordered pq.Int64Array
	var autoSteps []byte
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&combo.ID,
		&combo.SalonID,
		&combo.Name,
		&combo.Active,
		&trigger,
		&ordered,
		&autoSteps,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	combo.TriggerServiceTypeIDs = []int64(trigger)
	combo.OrderedServiceTypeIDs = []int64(ordered)
	if len(autoSteps) > 0 {
		if err := json.Unmarshal(autoSteps, &combo.AutoSteps); err != nil {
			return nil, fmt.Errorf("unmarshal auto steps: %v", err)
		}
	}

	combo.CreatedAt = createdAt.Time
	combo.UpdatedAt = updatedAt.Time

	return &combo, nil
}
