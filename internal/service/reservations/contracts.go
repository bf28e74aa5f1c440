package reservations

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Count(ctx context.Context, from, to *time.Time) (int, error)
	MostPopularTime(ctx context.Context) (*types.TimeString, int, error)
	CountBookedDays(ctx context.Context) (int, error)
}

// Exporter формирует файл выгрузки бронирований
type Exporter interface {
	WriteReservations(w io.Writer, reservations []*domain.Reservation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache сбрасывает кэш расписания дня
type SlotCache interface {
	Invalidate(ctx context.Context, date time.Time) error
}

// Notifier рассылает события об изменении расписания
type Notifier interface {
	Publish(event domain.ScheduleEvent)
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
