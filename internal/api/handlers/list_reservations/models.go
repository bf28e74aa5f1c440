package list_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/service/reservations/models"
)

// ToServiceRequest фильтр из query параметров: q, date, time
func ToServiceRequest(r *http.Request) *models.ListReservationsRequest {
	query := r.URL.Query()
	return &models.ListReservationsRequest{
		Query: query.Get("q"),
		Date:  query.Get("date"),
		Time:  query.Get("time"),
	}
}
