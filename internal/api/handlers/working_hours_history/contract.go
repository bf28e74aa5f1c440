package working_hours_history

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	History(ctx context.Context, date string) ([]*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
