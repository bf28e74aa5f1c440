package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// DisabledSlot administrative block of one hourly slot.
// Date == nil means the block is global (applies to every date).
type DisabledSlot struct {
	ID        int64
	Date      *time.Time
	Time      types.TimeString
	Reason    string
	IsActive  bool
	CreatedAt time.Time
}

// IsGlobal returns true if the slot is blocked for all dates
func (d *DisabledSlot) IsGlobal() bool {
	return d.Date == nil
}
