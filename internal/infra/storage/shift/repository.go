package shift

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/pkg/dbmetrics"
	"github.com/avdk/SBM-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения смен мастеров.
// Смены ведёт административный контур, сервис записи их только читает.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByResourceAndDate получает смену мастера на дату вместе с интервалами
func (r *Repository) GetByResourceAndDate(ctx context.Context, resourceID int64, date time.Time) (*domain.ShiftEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"shift_date",
		"status",
		"created_at",
		"updated_at",
	).
		From("shift_entries").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"shift_date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.ShiftEntry
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.ResourceID,
		&entry.Date,
		&entry.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceAndDate - scan shift entry: %v", ErrScanRow, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	slots, err := r.loadSlots(ctx, []int64{entry.ID})
	if err != nil {
		return nil, err
	}
	entry.Slots = slots[entry.ID]

	return &entry, nil
}

// GetByResourcesAndDate получает смены набора мастеров на дату.
// Мастера без смены в результат не попадают: их статус определяется
// правилами выходных на уровне бизнес-логики.
func (r *Repository) GetByResourcesAndDate(ctx context.Context, resourceIDs []int64, date time.Time) ([]*domain.ShiftEntry, error) {
	if len(resourceIDs) == 0 {
		return []*domain.ShiftEntry{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"shift_date",
		"status",
		"created_at",
		"updated_at",
	).
		From("shift_entries").
		Where(squirrel.Eq{"resource_id": resourceIDs}).
		Where(squirrel.Eq{"shift_date": date.Format(domain.DateFormat)}).
		OrderBy("resource_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourcesAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourcesAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.ShiftEntry, 0)
	entryIDs := make([]int64, 0)

	for rows.Next() {
		var entry domain.ShiftEntry
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.ResourceID,
			&entry.Date,
			&entry.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: GetByResourcesAndDate - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entry.UpdatedAt = updatedAt.Time

		entries = append(entries, &entry)
		entryIDs = append(entryIDs, entry.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByResourcesAndDate - rows error: %v", ErrScanRow, err)
	}

	if len(entries) == 0 {
		return entries, nil
	}

	slots, err := r.loadSlots(ctx, entryIDs)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		entry.Slots = slots[entry.ID]
	}

	return entries, nil
}

// loadSlots получает интервалы работы для набора смен и группирует их по смене
func (r *Repository) loadSlots(ctx context.Context, entryIDs []int64) (map[int64][]domain.ShiftSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"shift_entry_id",
		"start_time",
		"end_time",
	).
		From("shift_slots").
		Where(squirrel.Eq{"shift_entry_id": entryIDs}).
		OrderBy("shift_entry_id ASC, position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make(map[int64][]domain.ShiftSlot)

	for rows.Next() {
		var entryID int64
		var slot domain.ShiftSlot

		if err := rows.Scan(&entryID, &slot.Start, &slot.End); err != nil {
			return nil, fmt.Errorf("%w: loadSlots - scan row: %v", ErrScanRow, err)
		}

		slots[entryID] = append(slots[entryID], slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
