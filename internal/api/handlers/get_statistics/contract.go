package get_statistics

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/reservations/models"
)

type ReservationService interface {
	Statistics(ctx context.Context) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
