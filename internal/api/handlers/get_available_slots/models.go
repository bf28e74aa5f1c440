package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date          string        `json:"date"`
	GregorianDate string        `json:"gregorian_date"`
	Weekday       string        `json:"weekday"`
	IsHoliday     bool          `json:"is_holiday"`
	Reason        *string       `json:"reason,omitempty"`
	WorkingHours  *WorkingHours `json:"working_hours,omitempty"`
	Slots         []Slot        `json:"slots"`
}

type WorkingHours struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Slot модель часового слота
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Disabled  bool   `json:"disabled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Для выходного рабочие часы не возвращаются.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Time:      slot.Time.String(),
			Available: slot.Available,
			Disabled:  slot.Disabled,
		}
	}

	out := &AvailableSlotsResponse{
		Date:          resp.Date,
		GregorianDate: resp.GregorianDate,
		Weekday:       resp.Weekday,
		IsHoliday:     resp.IsHoliday,
		Reason:        resp.Reason,
		Slots:         slots,
	}
	if !resp.IsHoliday {
		out.WorkingHours = &WorkingHours{
			StartTime: resp.WorkingHours.StartTime.String(),
			EndTime:   resp.WorkingHours.EndTime.String(),
		}
	}
	return out
}
