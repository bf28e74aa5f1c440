package update_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/workinghours"
	"github.com/m04kA/SMC-BarberBooking/internal/service/workinghours/models"
)

const (
	msgInvalidRequestBody = "بدنه درخواست نامعتبر است"
	msgInvalidInput       = "ساعات کاری نامعتبر است"
	msgInvalidTimeRange   = "ساعت شروع باید قبل از ساعت پایان باشد"
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

// Handle PUT /api/v1/admin/working-hours
// Body: {"date": "j1403/01/15" | null, "start_time": "09:00", "end_time": "18:00"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, workinghours.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, workinghours.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /admin/working-hours - Failed to update working hours: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/working-hours - Working hours updated: id=%d, source=%s", *result.ID, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
