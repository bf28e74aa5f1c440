package workinghours

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// WorkingHoursRepository интерфейс журнала рабочих часов
type WorkingHoursRepository interface {
	Append(ctx context.Context, w *domain.WorkingHours) (*domain.WorkingHours, error)
	Deactivate(ctx context.Context, date *time.Time) (int64, error)
	ListActiveForDate(ctx context.Context, date time.Time) ([]*domain.WorkingHours, error)
	ListActive(ctx context.Context) ([]*domain.WorkingHours, error)
	History(ctx context.Context, date *time.Time) ([]*domain.WorkingHours, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache сбрасывает кэш расписаний
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time) error
	InvalidateAll(ctx context.Context) error
}

// Notifier рассылает события об изменении расписания
type Notifier interface {
	Publish(event domain.ScheduleEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
