package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName string
	PhoneNumber  string
	Date         string // дата солнечной хиджры "jYYYY/MM/DD"
	Time         string // начало часового слота "HH:00"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	CustomerName  string
	PhoneNumber   string
	Date          string // "jYYYY/MM/DD"
	GregorianDate string // "YYYY-MM-DD"
	Time          types.TimeString
	CreatedAt     time.Time
}

// Результаты бронирования для метрик
const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultRejected = "rejected"
	resultError    = "error"
)
