package create_holiday

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/holidays"
	"github.com/m04kA/SMC-BarberBooking/internal/service/holidays/models"
)

const (
	msgInvalidRequestBody = "بدنه درخواست نامعتبر است"
	msgInvalidInput       = "تاریخ یا دلیل تعطیلی نامعتبر است"
	msgHolidayExists      = "این روز قبلا تعطیل اعلام شده است"
)

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/holidays
// Body: {"date": "j1403/01/01", "reason": "نوروز"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, holidays.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, holidays.ErrHolidayExists):
			h.logger.Warn("POST /admin/holidays - Holiday exists: date=%s", req.Date)
			handlers.RespondConflict(w, msgHolidayExists)

		default:
			h.logger.Error("POST /admin/holidays - Failed to create holiday: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/holidays - Holiday created: id=%d, date=%s", result.ID, result.GregorianDate)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
