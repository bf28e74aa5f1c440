package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на изменение бронирования администратором
type Request struct {
	ID           int64
	CustomerName string
	PhoneNumber  string
	Date         string // дата солнечной хиджры "jYYYY/MM/DD"
	Time         string // "HH:MM"
}

// Response модель ответа с измененным бронированием
type Response struct {
	ID            int64
	CustomerName  string
	PhoneNumber   string
	Date          string // "jYYYY/MM/DD"
	GregorianDate string // "YYYY-MM-DD"
	Time          types.TimeString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
