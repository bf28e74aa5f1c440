package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberBooking/pkg/sqlerr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

const tableName = "reservations"

var columns = []string{
	"id",
	"customer_name",
	"phone_number",
	"date",
	"time",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Уникальный индекс (date, time) гарантирует отсутствие двойного бронирования
// даже при гонке запросов: нарушение индекса возвращается как ErrReservationExists.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := psqlbuilder.Insert(tableName).
		Columns("customer_name", "phone_number", "date", "time", "created_at", "updated_at").
		Values(res.CustomerName, res.PhoneNumber, domain.FormatDate(res.Date), res.Time, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID); err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, ErrReservationExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.CreatedAt = now
	res.UpdatedAt = now

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// Update изменяет имя, телефон, дату и время бронирования
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := psqlbuilder.Update(tableName).
		Set("customer_name", res.CustomerName).
		Set("phone_number", res.PhoneNumber).
		Set("date", domain.FormatDate(res.Date)).
		Set("time", res.Time).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return ErrReservationExists
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	res.UpdatedAt = now
	return nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ExistsAt проверяет, занят ли слот (date, time).
// excludeID > 0 исключает из проверки само редактируемое бронирование.
func (r *Repository) ExistsAt(ctx context.Context, date time.Time, t types.TimeString, excludeID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"date": domain.FormatDate(date), "time": t})
	if excludeID > 0 {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsAt - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsAt - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// GetByDate получает бронирования на дату, отсортированные по времени
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"date": domain.FormatDate(date)}).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// List получает бронирования для панели администратора.
// Сортировка: дата по убыванию, время по возрастанию.
// Поддерживает поиск по подстроке имени или телефона и фильтры по дате и времени.
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(tableName)

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.Like{"customer_name": pattern},
			squirrel.Like{"phone_number": pattern},
		})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"date": domain.FormatDate(*filter.Date)})
	}
	if filter.Time != nil {
		builder = builder.Where(squirrel.Eq{"time": *filter.Time})
	}

	query, args, err := builder.OrderBy("date DESC", "time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Count считает бронирования в диапазоне дат [from, to]; nil границы не ограничивают
func (r *Repository) Count(ctx context.Context, from, to *time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("COUNT(*)").From(tableName)
	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"date": domain.FormatDate(*from)})
	}
	if to != nil {
		builder = builder.Where(squirrel.LtOrEq{"date": domain.FormatDate(*to)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// MostPopularTime время с наибольшим числом бронирований; nil, если бронирований нет
func (r *Repository) MostPopularTime(ctx context.Context) (*types.TimeString, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time", "COUNT(*) AS cnt").
		From(tableName).
		GroupBy("time").
		OrderBy("cnt DESC", "time ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: MostPopularTime - build select query: %v", ErrBuildQuery, err)
	}

	var (
		t     types.TimeString
		count int
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: MostPopularTime - scan row: %w", ErrScanRow, err)
	}

	return &t, count, nil
}

// CountBookedDays количество различных дат, на которые есть бронирования
func (r *Repository) CountBookedDays(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT date)").From(tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBookedDays - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBookedDays - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res  domain.Reservation
		date string
	)

	err := row.Scan(
		&res.ID,
		&res.CustomerName,
		&res.PhoneNumber,
		&date,
		&res.Time,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Date, err = domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
