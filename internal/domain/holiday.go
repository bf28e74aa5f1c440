package domain

import "time"

// Holiday whole-day closure. At most one per date.
type Holiday struct {
	ID        int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}

// ReasonOrDefault возвращает причину или стандартный текст
func (h *Holiday) ReasonOrDefault() string {
	if h.Reason == nil || *h.Reason == "" {
		return DefaultHolidayReason
	}
	return *h.Reason
}
