package get_today

import "github.com/m04kA/SMC-BarberBooking/internal/service/calendar/models"

type CalendarService interface {
	Today() *models.TodayResponse
}
