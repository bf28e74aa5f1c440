package get_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/workinghours"
)

const msgInvalidDate = "تاریخ نامعتبر است"

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

// Handle GET /api/v1/admin/working-hours
// Query params: date (необязательно). Без даты - часы по умолчанию.
// Если записей нет, возвращается встроенное окно с source=builtin.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	result, err := h.service.Get(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, workinghours.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /admin/working-hours - Failed to get working hours: date=%q, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
