package archive

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mirelka/SLN-SchedulingService/internal/domain"
	"github.com/mirelka/SLN-SchedulingService/pkg/dbmetrics"
	"github.com/mirelka/SLN-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий архива записей
// Архив хранит по одной строке на пару (клиент, тип услуги): повторное
// архивирование с тем же ключом замещает предыдущую строку
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория архива
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert записывает архивную запись
// replaceExisting = true: запись с тем же archive_key замещается (replace-on-write).
// replaceExisting = false: ключ уникален по построению, конфликт означает повтор
// той же записи и молча игнорируется.
func (r *Repository) Upsert(ctx context.Context, record *domain.ArchiveRecord, replaceExisting bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_archive").
		Columns(
			"archive_key",
			"client_key",
			"service_type_key",
			"booking_id",
			"salon_id",
			"worker_id",
			"client_name",
			"client_phone",
			"service_name",
			"booking_date",
		).
		Values(
			record.ArchiveKey,
			record.ClientKey,
			record.ServiceTypeKey,
			record.BookingID,
			record.SalonID,
			record.WorkerID,
			record.ClientName,
			record.ClientPhone,
			record.ServiceName,
			record.BookingDate,
		)

	if replaceExisting {
		insertBuilder = insertBuilder.Suffix(`ON CONFLICT (archive_key) DO UPDATE SET
			client_key = EXCLUDED.client_key,
			service_type_key = EXCLUDED.service_type_key,
			booking_id = EXCLUDED.booking_id,
			salon_id = EXCLUDED.salon_id,
			worker_id = EXCLUDED.worker_id,
			client_name = EXCLUDED.client_name,
			client_phone = EXCLUDED.client_phone,
			service_name = EXCLUDED.service_name,
			booking_date = EXCLUDED.booking_date,
			archived_at = NOW()`)
	} else {
		insertBuilder = insertBuilder.Suffix("ON CONFLICT (archive_key) DO NOTHING")
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByClientKey получает архивные записи клиента
func (r *Repository) GetByClientKey(ctx context.Context, clientKey string) ([]*domain.ArchiveRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"archive_key",
		"client_key",
		"service_type_key",
		"booking_id",
		"salon_id",
		"worker_id",
		"client_name",
		"client_phone",
		"service_name",
		"booking_date",
		"archived_at",
	).
		From("booking_archive").
		Where(squirrel.Eq{"client_key": clientKey}).
		OrderBy("booking_date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientKey - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientKey - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.ArchiveRecord, 0)
	for rows.Next() {
		var record domain.ArchiveRecord
		var archivedAt sql.NullTime

		err := rows.Scan(
			&record.ID,
			&record.ArchiveKey,
			&record.ClientKey,
			&record.ServiceTypeKey,
			&record.BookingID,
			&record.SalonID,
			&record.WorkerID,
			&record.ClientName,
			&record.ClientPhone,
			&record.ServiceName,
			&record.BookingDate,
			&archivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByClientKey - scan row: %v", ErrScanRow, err)
		}

		record.ArchivedAt = archivedAt.Time
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByClientKey - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
