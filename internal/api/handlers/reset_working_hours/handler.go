package reset_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/workinghours"
)

const (
	msgInvalidDate = "تاریخ نامعتبر است"
	msgNotFound    = "ساعات کاری برای این تاریخ تنظیم نشده است"
)

type Handler struct {
	service WorkingHoursService
	logger  Logger
}

func NewHandler(service WorkingHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/working-hours
// Query params: date (необязательно). Дата возвращается к часам по умолчанию,
// без даты часы по умолчанию возвращаются к 10:00-20:00.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	if err := h.service.Reset(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, workinghours.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, workinghours.ErrWorkingHoursNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/working-hours - Failed to reset working hours: date=%q, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/working-hours - Working hours reset: date=%q", date)
	w.WriteHeader(http.StatusNoContent)
}
