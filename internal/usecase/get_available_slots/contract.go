package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// HolidayRepository интерфейс репозитория выходных дней
type HolidayRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.Holiday, error)
}

// WorkingHoursRepository интерфейс журнала рабочих часов
type WorkingHoursRepository interface {
	// ListActiveForDate активные записи на дату и записи по умолчанию
	ListActiveForDate(ctx context.Context, date time.Time) ([]*domain.WorkingHours, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
}

// DisabledSlotRepository интерфейс репозитория отключенных слотов
type DisabledSlotRepository interface {
	ListActiveForDate(ctx context.Context, date time.Time, includeGlobal bool) ([]*domain.DisabledSlot, error)
}

// SlotCache кэш рассчитанного расписания дня
// Generation читается до расчета: Set отбрасывает расписание, если дату успели сбросить.
type SlotCache interface {
	Get(ctx context.Context, date time.Time) (*domain.DaySchedule, bool, error)
	Generation(ctx context.Context, date time.Time) (string, error)
	Set(ctx context.Context, schedule *domain.DaySchedule, generation string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
