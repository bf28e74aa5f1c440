package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// WorkingHours one record of the working-hours log.
// Records are never edited: an update appends a new active record and marks
// the previous records for the same key as superseded (IsActive = false).
// Key is either a specific date or the default (Date == nil).
type WorkingHours struct {
	ID        int64
	Date      *time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
	CreatedAt time.Time
}

// IsDefault returns true if the record applies to every date without its own record
func (w *WorkingHours) IsDefault() bool {
	return w.Date == nil
}

// Window returns the time window of the record
func (w *WorkingHours) Window() WorkingWindow {
	return WorkingWindow{Start: w.StartTime, End: w.EndTime}
}

// newerThan порядок "самая свежая запись": created_at, затем id
func (w *WorkingHours) newerThan(other *WorkingHours) bool {
	if !w.CreatedAt.Equal(other.CreatedAt) {
		return w.CreatedAt.After(other.CreatedAt)
	}
	return w.ID > other.ID
}

// WorkingWindow working time window of a day [Start, End)
type WorkingWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// DefaultWorkingWindow окно, используемое при пустом журнале
func DefaultWorkingWindow() WorkingWindow {
	return WorkingWindow{Start: DefaultStartTime, End: DefaultEndTime}
}

// SlotTimes hourly slot starts "HH:00" for every hour in [start hour, end hour)
func (w WorkingWindow) SlotTimes() []types.TimeString {
	startHour, endHour := w.Start.Hour(), w.End.Hour()
	if startHour < 0 || endHour <= startHour {
		return []types.TimeString{}
	}

	times := make([]types.TimeString, 0, endHour-startHour)
	for h := startHour; h < endHour; h++ {
		times = append(times, types.HourSlot(h))
	}
	return times
}

// Contains true, если слот t попадает в окно
func (w WorkingWindow) Contains(t types.TimeString) bool {
	for _, slot := range w.SlotTimes() {
		if slot == t {
			return true
		}
	}
	return false
}

// ResolveWorkingHours выбирает действующую запись журнала для даты:
// 1. самая свежая активная запись на эту дату;
// 2. иначе самая свежая активная запись по умолчанию;
// 3. иначе nil (вызывающий использует DefaultWorkingWindow).
// Несколько активных записей на один ключ допустимы, побеждает самая свежая.
func ResolveWorkingHours(log []*WorkingHours, date time.Time) *WorkingHours {
	day := DateOnly(date)

	var specific, fallback *WorkingHours
	for _, entry := range log {
		if entry == nil || !entry.IsActive {
			continue
		}

		if entry.Date == nil {
			if fallback == nil || entry.newerThan(fallback) {
				fallback = entry
			}
			continue
		}

		if DateOnly(*entry.Date).Equal(day) {
			if specific == nil || entry.newerThan(specific) {
				specific = entry
			}
		}
	}

	if specific != nil {
		return specific
	}
	return fallback
}

// ResolveWorkingWindow окно работы для даты с учетом значения по умолчанию
func ResolveWorkingWindow(log []*WorkingHours, date time.Time) WorkingWindow {
	if entry := ResolveWorkingHours(log, date); entry != nil {
		return entry.Window()
	}
	return DefaultWorkingWindow()
}
