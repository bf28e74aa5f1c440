package disabledslots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// DisabledSlotRepository интерфейс репозитория отключенных слотов
type DisabledSlotRepository interface {
	Create(ctx context.Context, s *domain.DisabledSlot) (*domain.DisabledSlot, error)
	List(ctx context.Context) ([]*domain.DisabledSlot, error)
	ListActiveForDate(ctx context.Context, date time.Time, includeGlobal bool) ([]*domain.DisabledSlot, error)
	Delete(ctx context.Context, id int64) (*domain.DisabledSlot, error)
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
