package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
)

// CreateHolidayRequest запрос на добавление выходного
type CreateHolidayRequest struct {
	Date   string  `json:"date"`             // дата солнечной хиджры
	Reason *string `json:"reason,omitempty"` // nil = стандартная причина
}

// HolidayResponse выходной день
type HolidayResponse struct {
	ID            int64     `json:"id"`
	Date          string    `json:"date"`
	GregorianDate string    `json:"gregorian_date"`
	Weekday       string    `json:"weekday"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromDomainHoliday конвертирует выходной в ответ
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	return &HolidayResponse{
		ID:            h.ID,
		Date:          jalali.FormatJalali(h.Date),
		GregorianDate: jalali.FormatISO(h.Date),
		Weekday:       jalali.WeekdayName(h.Date),
		Reason:        h.ReasonOrDefault(),
		CreatedAt:     h.CreatedAt,
	}
}
