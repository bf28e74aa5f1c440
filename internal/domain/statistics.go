package domain

import "github.com/m04kA/SMC-BarberBooking/pkg/types"

// ReservationStats сводка для панели администратора
type ReservationStats struct {
	Total            int
	Today            int
	ThisMonth        int // текущий месяц иранского календаря
	MostPopularTime  *types.TimeString
	MostPopularCount int
	BookedDays       int
	AveragePerDay    float64
}
