package domain

import "github.com/m04kA/SMC-BarberBooking/pkg/types"

// Default working window used when no working hours are configured
const (
	DefaultStartTime types.TimeString = "10:00"
	DefaultEndTime   types.TimeString = "20:00"
)

// DefaultHolidayReason причина выходного, если администратор её не указал
const DefaultHolidayReason = "تعطیل"

// Business validation constants
const (
	MaxCustomerNameLength = 100
	MaxReasonLength       = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
