package domain

import (
	"regexp"
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// phonePattern мобильный номер: "09" и ещё 9 цифр
var phonePattern = regexp.MustCompile(`^09\d{9}$`)

// Reservation represents a customer booking of one hourly slot
type Reservation struct {
	ID           int64
	CustomerName string
	PhoneNumber  string
	Date         time.Time // григорианская дата (полночь UTC)
	Time         types.TimeString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReservationFilter фильтр административного списка бронирований
type ReservationFilter struct {
	Query string // подстрока имени или телефона
	Date  *time.Time
	Time  *types.TimeString
}

// IsEmpty returns true if no filter criteria are set
func (f ReservationFilter) IsEmpty() bool {
	return f.Query == "" && f.Date == nil && f.Time == nil
}

// IsValidPhone проверяет формат номера телефона
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// DateOnly обрезает время, оставляя полночь UTC того же календарного дня
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate форматирует дату для хранения: "YYYY-MM-DD"
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate разбирает дату хранения "YYYY-MM-DD" в полночь UTC
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}
