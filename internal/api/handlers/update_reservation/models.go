package update_reservation

import (
	"time"

	updateReservation "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model
type UpdateReservationRequest struct {
	CustomerName string `json:"customer_name"`
	PhoneNumber  string `json:"phone_number"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"customer_name"`
	PhoneNumber   string `json:"phone_number"`
	Date          string `json:"date"`
	GregorianDate string `json:"gregorian_date"`
	Time          string `json:"time"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func (r *UpdateReservationRequest) ToUseCaseRequest(id int64) *updateReservation.Request {
	return &updateReservation.Request{
		ID:           id,
		CustomerName: r.CustomerName,
		PhoneNumber:  r.PhoneNumber,
		Date:         r.Date,
		Time:         r.Time,
	}
}

func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		CustomerName:  resp.CustomerName,
		PhoneNumber:   resp.PhoneNumber,
		Date:          resp.Date,
		GregorianDate: resp.GregorianDate,
		Time:          resp.Time.String(),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
