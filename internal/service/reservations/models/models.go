package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модели

// ListReservationsRequest параметры административного списка.
// Все поля необязательны.
type ListReservationsRequest struct {
	Query string // подстрока имени или телефона
	Date  string // дата солнечной хиджры
	Time  string // "HH:MM"
}

// Response модели

// ReservationResponse бронирование с датой в календаре солнечной хиджры
type ReservationResponse struct {
	ID            int64            `json:"id"`
	CustomerName  string           `json:"customer_name"`
	PhoneNumber   string           `json:"phone_number"`
	Date          string           `json:"date"`
	GregorianDate string           `json:"gregorian_date"`
	Time          types.TimeString `json:"time"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// StatisticsResponse сводка для панели администратора
type StatisticsResponse struct {
	Total            int               `json:"total"`
	Today            int               `json:"today"`
	ThisMonth        int               `json:"this_month"`
	MonthName        string            `json:"month_name"`
	MostPopularTime  *types.TimeString `json:"most_popular_time"`
	MostPopularCount int               `json:"most_popular_count"`
	BookedDays       int               `json:"booked_days"`
	AveragePerDay    float64           `json:"average_per_day"`
}

// FromDomainReservation конвертирует бронирование в ответ
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:            r.ID,
		CustomerName:  r.CustomerName,
		PhoneNumber:   r.PhoneNumber,
		Date:          jalali.FormatJalali(r.Date),
		GregorianDate: jalali.FormatISO(r.Date),
		Time:          r.Time,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(list []*domain.Reservation) []*ReservationResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomainReservation(r))
	}
	return out
}

// FromDomainStatistics конвертирует статистику
func FromDomainStatistics(s *domain.ReservationStats, monthName string) *StatisticsResponse {
	return &StatisticsResponse{
		Total:            s.Total,
		Today:            s.Today,
		ThisMonth:        s.ThisMonth,
		MonthName:        monthName,
		MostPopularTime:  s.MostPopularTime,
		MostPopularCount: s.MostPopularCount,
		BookedDays:       s.BookedDays,
		AveragePerDay:    s.AveragePerDay,
	}
}
