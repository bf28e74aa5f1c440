package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// AvailabilityResolver рассчитывает расписание дня
type AvailabilityResolver interface {
	ResolveDay(ctx context.Context, date time.Time) (*domain.DaySchedule, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache сбрасывает кэш расписания дня
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// Notifier рассылает события об изменении расписания
type Notifier interface {
	Publish(event domain.ScheduleEvent)
}

// Metrics счетчики результатов бронирования
type Metrics interface {
	ReservationResult(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
