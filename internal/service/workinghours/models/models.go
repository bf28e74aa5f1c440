package models

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Источник рабочего окна
const (
	SourceDate    = "date"    // запись на конкретную дату
	SourceDefault = "default" // запись по умолчанию
	SourceBuiltin = "builtin" // журнал пуст, используется 10:00-20:00
)

// UpdateWorkingHoursRequest запрос на изменение рабочих часов.
// Date == nil меняет часы по умолчанию.
type UpdateWorkingHoursRequest struct {
	Date      *string `json:"date,omitempty"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
}

// WorkingHoursResponse запись журнала или рассчитанное окно
type WorkingHoursResponse struct {
	ID        *int64           `json:"id,omitempty"`
	Date      *string          `json:"date"` // дата солнечной хиджры, nil для записи по умолчанию
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
	IsActive  bool             `json:"is_active"`
	Source    string           `json:"source,omitempty"`
	CreatedAt *time.Time       `json:"created_at,omitempty"`
}

// FromDomainWorkingHours конвертирует запись журнала
func FromDomainWorkingHours(w *domain.WorkingHours) *WorkingHoursResponse {
	resp := &WorkingHoursResponse{
		ID:        &w.ID,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		IsActive:  w.IsActive,
		Source:    SourceDefault,
		CreatedAt: &w.CreatedAt,
	}
	if w.Date != nil {
		d := jalali.FormatJalali(*w.Date)
		resp.Date = &d
		resp.Source = SourceDate
	}
	return resp
}

// FromDomainWorkingHoursList конвертирует список записей
func FromDomainWorkingHoursList(list []*domain.WorkingHours) []*WorkingHoursResponse {
	out := make([]*WorkingHoursResponse, 0, len(list))
	for _, w := range list {
		out = append(out, FromDomainWorkingHours(w))
	}
	return out
}

// BuiltinWorkingHours окно по умолчанию, когда журнал пуст
func BuiltinWorkingHours(date *time.Time) *WorkingHoursResponse {
	window := domain.DefaultWorkingWindow()
	resp := &WorkingHoursResponse{
		StartTime: window.Start,
		EndTime:   window.End,
		IsActive:  true,
		Source:    SourceBuiltin,
	}
	if date != nil {
		d := jalali.FormatJalali(*date)
		resp.Date = &d
	}
	return resp
}
