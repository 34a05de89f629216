package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/pkg/dbmetrics"
	"github.com/avdk/SBM-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Занятость мастера дополнительно защищена exclusion constraint на интервал
// [service_start, total_end) для блокирующих статусов: даже если проверка
// конфликтов в транзакции была обойдена, БД отклонит пересекающуюся запись,
// и метод вернёт ErrBookingConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"resource_id",
			"menu_id",
			"user_id",
			"customer_name",
			"customer_phone",
			"service_start",
			"service_end",
			"total_end",
			"status",
			"is_staff_preferred",
			"nomination_fee",
			"base_total_price",
			"note",
			"internal_note",
		).
		Values(
			booking.ResourceID,
			booking.MenuID,
			booking.UserID,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.ServiceStart,
			booking.ServiceEnd,
			booking.TotalEnd,
			booking.Status,
			booking.IsStaffPreferred,
			booking.NominationFee,
			booking.BaseTotalPrice,
			booking.Note,
			booking.InternalNote,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isIntegrityConflict(err) {
			return nil, ErrBookingConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.ResourceID,
		&booking.MenuID,
		&booking.UserID,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.ServiceStart,
		&booking.ServiceEnd,
		&booking.TotalEnd,
		&booking.Status,
		&booking.IsStaffPreferred,
		&booking.NominationFee,
		&booking.BaseTotalPrice,
		&booking.Note,
		&booking.InternalNote,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// GetByUserID получает список записей пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("service_start DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByResourcesAndWindow получает блокирующие записи мастеров,
// пересекающиеся с окном [window.Start, window.End)
// Используется таймлайном для раскладки записей по дорожкам
func (r *Repository) GetByResourcesAndWindow(ctx context.Context, resourceIDs []int64, window domain.TimeRange) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": blockingStatusStrings()}).
		Where(squirrel.Lt{"service_start": window.End}).
		Where(squirrel.Gt{"total_end": window.Start}).
		OrderBy("resource_id ASC, service_start ASC")

	if len(resourceIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": resourceIDs})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourcesAndWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourcesAndWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ExistsResourceOverlap проверяет, есть ли у мастера блокирующая запись,
// пересекающаяся с окном. Граничные случаи пересечением не считаются:
// запись до 10:30 совместима со слотом с 10:30.
//
// excludeID исключает запись из проверки (для реактивации её же самой)
func (r *Repository) ExistsResourceOverlap(ctx context.Context, resourceID int64, window domain.TimeRange, excludeID int64) (bool, error) {
	builder := r.overlapQuery(window, excludeID).
		Where(squirrel.Eq{"resource_id": resourceID})

	return r.exists(ctx, builder, "ExistsResourceOverlap")
}

// ExistsUserOverlap проверяет, есть ли у клиента другая блокирующая запись,
// пересекающаяся с окном (по любому мастеру)
func (r *Repository) ExistsUserOverlap(ctx context.Context, userID int64, window domain.TimeRange, excludeID int64) (bool, error) {
	builder := r.overlapQuery(window, excludeID).
		Where(squirrel.Eq{"user_id": userID})

	return r.exists(ctx, builder, "ExistsUserOverlap")
}

// ExistsPhoneOverlap проверяет пересечение по номеру телефона клиента.
// Нужна для записей, введённых менеджером без привязки к аккаунту.
func (r *Repository) ExistsPhoneOverlap(ctx context.Context, phone string, window domain.TimeRange, excludeID int64) (bool, error) {
	builder := r.overlapQuery(window, excludeID).
		Where(squirrel.Eq{"customer_phone": phone})

	return r.exists(ctx, builder, "ExistsPhoneOverlap")
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isIntegrityConflict(err) {
			return ErrBookingConflict
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет запись с указанием причины
// Запись не удаляется: история и причина отмены сохраняются
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// overlapQuery собирает базовый EXISTS-запрос на пересечение окна
// с блокирующими записями
func (r *Repository) overlapQuery(window domain.TimeRange, excludeID int64) squirrel.SelectBuilder {
	builder := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"status": blockingStatusStrings()}).
		Where(squirrel.Lt{"service_start": window.End}).
		Where(squirrel.Gt{"total_end": window.Start}).
		Limit(1)

	if excludeID > 0 {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}

	return builder
}

// exists выполняет EXISTS-запрос
// Внутри транзакции добавляет FOR UPDATE для блокировки найденных строк
func (r *Repository) exists(ctx context.Context, builder squirrel.SelectBuilder, method string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}

	return true, nil
}

// scanBookings сканирует результаты запроса в слайс записей
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.ResourceID,
			&booking.MenuID,
			&booking.UserID,
			&booking.CustomerName,
			&booking.CustomerPhone,
			&booking.ServiceStart,
			&booking.ServiceEnd,
			&booking.TotalEnd,
			&booking.Status,
			&booking.IsStaffPreferred,
			&booking.NominationFee,
			&booking.BaseTotalPrice,
			&booking.Note,
			&booking.InternalNote,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// bookingColumns полный список колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"resource_id",
	"menu_id",
	"user_id",
	"customer_name",
	"customer_phone",
	"service_start",
	"service_end",
	"total_end",
	"status",
	"is_staff_preferred",
	"nomination_fee",
	"base_total_price",
	"note",
	"internal_note",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// blockingStatusStrings конвертирует блокирующие статусы для squirrel.Eq (IN)
func blockingStatusStrings() []string {
	statuses := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// isIntegrityConflict распознаёт нарушение ограничений занятости:
// 23P01 - exclusion constraint, 23505 - unique constraint
func isIntegrityConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01" || pqErr.Code == "23505"
	}
	return false
}
