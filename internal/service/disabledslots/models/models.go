package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// CreateDisabledSlotRequest запрос на отключение слота.
// Date == nil отключает слот для всех дат.
type CreateDisabledSlotRequest struct {
	Date   *string `json:"date,omitempty"`
	Time   string  `json:"time"`
	Reason string  `json:"reason"`
}

// DisabledSlotResponse отключенный слот
type DisabledSlotResponse struct {
	ID        int64            `json:"id"`
	Date      *string          `json:"date"` // дата солнечной хиджры, nil для всех дат
	Time      types.TimeString `json:"time"`
	Reason    string           `json:"reason"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
}

// FromDomainDisabledSlot конвертирует отключенный слот в ответ
func FromDomainDisabledSlot(s *domain.DisabledSlot) *DisabledSlotResponse {
	resp := &DisabledSlotResponse{
		ID:        s.ID,
		Time:      s.Time,
		Reason:    s.Reason,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
	if s.Date != nil {
		d := jalali.FormatJalali(*s.Date)
		resp.Date = &d
	}
	return resp
}
