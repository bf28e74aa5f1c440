package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Slot one hourly slot of a day.
// Available = not booked and not disabled; Disabled marks administrative blocks.
type Slot struct {
	Time      types.TimeString
	Available bool
	Disabled  bool
}

// IsBooked returns true if the slot is taken by a customer
func (s Slot) IsBooked() bool {
	return !s.Available && !s.Disabled
}

// DaySchedule computed availability of one date
type DaySchedule struct {
	Date          time.Time
	IsHoliday     bool
	HolidayReason string
	WorkingHours  WorkingWindow
	Slots         []Slot
}

// FindSlot ищет слот по времени
func (d *DaySchedule) FindSlot(t types.TimeString) (Slot, bool) {
	for _, s := range d.Slots {
		if s.Time == t {
			return s, true
		}
	}
	return Slot{}, false
}

// AvailableCount количество свободных слотов
func (d *DaySchedule) AvailableCount() int {
	n := 0
	for _, s := range d.Slots {
		if s.Available {
			n++
		}
	}
	return n
}
