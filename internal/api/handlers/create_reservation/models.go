package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerName string `json:"customer_name"`
	PhoneNumber  string `json:"phone_number"`
	Date         string `json:"date"` // "j1403/01/15"
	Time         string `json:"time"` // "14:00"
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
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Разбор даты и времени выполняет use case.
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		CustomerName: r.CustomerName,
		PhoneNumber:  r.PhoneNumber,
		Date:         r.Date,
		Time:         r.Time,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		CustomerName:  resp.CustomerName,
		PhoneNumber:   resp.PhoneNumber,
		Date:          resp.Date,
		GregorianDate: resp.GregorianDate,
		Time:          resp.Time.String(),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
