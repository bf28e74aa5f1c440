package workinghours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const tableName = "working_hours"

var columns = []string{"id", "date", "start_time", "end_time", "is_active", "created_at"}

// Repository журнал рабочих часов.
// Записи только добавляются и деактивируются, но никогда не изменяются по содержанию.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет новую запись журнала
func (r *Repository) Append(ctx context.Context, w *domain.WorkingHours) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := psqlbuilder.Insert(tableName).
		Columns("date", "start_time", "end_time", "is_active", "created_at").
		Values(dateValue(w.Date), w.StartTime, w.EndTime, w.IsActive, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID); err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %w", ErrExecQuery, err)
	}

	w.CreatedAt = now
	return w, nil
}

// Deactivate помечает устаревшими активные записи ключа: даты или (date == nil) расписания по умолчанию
func (r *Repository) Deactivate(ctx context.Context, date *time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_active", false).
		Where(squirrel.Eq{"is_active": true}).
		Where(keyCondition(date)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: Deactivate - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// ListActiveForDate активные записи на дату и записи по умолчанию, самые свежие первыми
func (r *Repository) ListActiveForDate(ctx context.Context, date time.Time) ([]*domain.WorkingHours, error) {
	return r.list(ctx, "ListActiveForDate", squirrel.And{
		squirrel.Eq{"is_active": true},
		squirrel.Or{
			squirrel.Eq{"date": domain.FormatDate(date)},
			squirrel.Eq{"date": nil},
		},
	})
}

// ListActive все активные записи журнала
func (r *Repository) ListActive(ctx context.Context) ([]*domain.WorkingHours, error) {
	return r.list(ctx, "ListActive", squirrel.Eq{"is_active": true})
}

// History полная история ключа, включая устаревшие записи
func (r *Repository) History(ctx context.Context, date *time.Time) ([]*domain.WorkingHours, error) {
	return r.list(ctx, "History", keyCondition(date))
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	entries := make([]*domain.WorkingHours, 0)
	for rows.Next() {
		var (
			w    domain.WorkingHours
			date sql.NullString
		)
		if err := rows.Scan(&w.ID, &date, &w.StartTime, &w.EndTime, &w.IsActive, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		if date.Valid {
			parsed, err := domain.ParseDate(date.String)
			if err != nil {
				return nil, fmt.Errorf("%w: %s - parse date %q: %v", ErrScanRow, op, date.String, err)
			}
			w.Date = &parsed
		}

		entries = append(entries, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return entries, nil
}

func keyCondition(date *time.Time) squirrel.Sqlizer {
	if date == nil {
		return squirrel.Eq{"date": nil}
	}
	return squirrel.Eq{"date": domain.FormatDate(*date)}
}

func dateValue(date *time.Time) interface{} {
	if date == nil {
		return nil
	}
	return domain.FormatDate(*date)
}
