package disabledslot

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

const tableName = "disabled_slots"

var columns = []string{"id", "date", "time", "reason", "is_active", "created_at"}

// Repository репозиторий отключённых администратором слотов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет активный отключённый слот
func (r *Repository) Create(ctx context.Context, s *domain.DisabledSlot) (*domain.DisabledSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var date interface{}
	if s.Date != nil {
		date = domain.FormatDate(*s.Date)
	}

	now := time.Now().UTC()
	query, args, err := psqlbuilder.Insert(tableName).
		Columns("date", "time", "reason", "is_active", "created_at").
		Values(date, s.Time, s.Reason, true, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.IsActive = true
	s.CreatedAt = now
	return s, nil
}

// List активные отключённые слоты: сначала глобальные, затем по дате и времени
func (r *Repository) List(ctx context.Context) ([]*domain.DisabledSlot, error) {
	return r.list(ctx, "List", squirrel.Eq{"is_active": true})
}

// ListActiveForDate активные слоты на дату; includeGlobal добавляет слоты без даты
func (r *Repository) ListActiveForDate(ctx context.Context, date time.Time, includeGlobal bool) ([]*domain.DisabledSlot, error) {
	var dateCond squirrel.Sqlizer = squirrel.Eq{"date": domain.FormatDate(date)}
	if includeGlobal {
		dateCond = squirrel.Or{dateCond, squirrel.Eq{"date": nil}}
	}

	return r.list(ctx, "ListActiveForDate", squirrel.And{
		squirrel.Eq{"is_active": true},
		dateCond,
	})
}

// Delete удаляет отключённый слот и возвращает удалённую запись
func (r *Repository) Delete(ctx context.Context, id int64) (*domain.DisabledSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots, err := r.list(ctx, "Delete", squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrDisabledSlotNotFound
	}

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return nil, ErrDisabledSlotNotFound
	}

	return slots[0], nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.DisabledSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("CASE WHEN date IS NULL THEN 0 ELSE 1 END", "date ASC", "time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]*domain.DisabledSlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return slots, nil
}

func scanSlot(rows *sql.Rows) (*domain.DisabledSlot, error) {
	var (
		s    domain.DisabledSlot
		date sql.NullString
	)

	if err := rows.Scan(&s.ID, &date, &s.Time, &s.Reason, &s.IsActive, &s.CreatedAt); err != nil {
		return nil, err
	}

	if date.Valid {
		parsed, err := domain.ParseDate(date.String)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", date.String, err)
		}
		s.Date = &parsed
	}

	return &s, nil
}
