package create_disabled_slot

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/disabledslots/models"
)

type DisabledSlotService interface {
	Create(ctx context.Context, req *models.CreateDisabledSlotRequest) (*models.DisabledSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
