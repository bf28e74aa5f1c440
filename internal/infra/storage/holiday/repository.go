package holiday

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
)

const tableName = "holidays"

var columns = []string{"id", "date", "reason", "created_at"}

// Repository репозиторий выходных дней
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет выходной; повтор даты возвращает ErrHolidayExists
func (r *Repository) Create(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := psqlbuilder.Insert(tableName).
		Columns("date", "reason", "created_at").
		Values(domain.FormatDate(h.Date), h.Reason, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID); err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, ErrHolidayExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	h.CreatedAt = now
	return h, nil
}

// GetByDate получает выходной на дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"date": domain.FormatDate(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHoliday(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan holiday: %w", ErrScanRow, err)
	}

	return h, nil
}

// List все выходные по возрастанию даты
func (r *Repository) List(ctx context.Context) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return holidays, nil
}

// Delete удаляет выходной по ID и возвращает его дату
func (r *Repository) Delete(ctx context.Context, id int64) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING date").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	var date string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrHolidayNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	parsed, err := domain.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Delete - parse date %q: %v", ErrScanRow, date, err)
	}

	return parsed, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHoliday(row rowScanner) (*domain.Holiday, error) {
	var (
		h      domain.Holiday
		date   string
		reason sql.NullString
	)

	if err := row.Scan(&h.ID, &date, &reason, &h.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	h.Date = parsed

	if reason.Valid {
		h.Reason = &reason.String
	}

	return &h, nil
}
