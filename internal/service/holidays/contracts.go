package holidays

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// HolidayRepository интерфейс репозитория выходных дней
type HolidayRepository interface {
	Create(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error)
	List(ctx context.Context) ([]*domain.Holiday, error)
	Delete(ctx context.Context, id int64) (time.Time, error)
}

// SlotCache сбрасывает кэш расписания дня
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time) error
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
