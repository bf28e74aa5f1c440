package list_disabled_slots

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/disabledslots/models"
)

type DisabledSlotService interface {
	List(ctx context.Context, date string) ([]*models.DisabledSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
