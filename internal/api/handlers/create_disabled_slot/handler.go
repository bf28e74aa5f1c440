package create_disabled_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/disabledslots"
	"github.com/m04kA/SMC-BarberBooking/internal/service/disabledslots/models"
)

const (
	msgInvalidRequestBody = "بدنه درخواست نامعتبر است"
	msgInvalidInput       = "ساعت، تاریخ یا دلیل نامعتبر است"
)

type Handler struct {
	service DisabledSlotService
	logger  Logger
}

func NewHandler(service DisabledSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/disabled-slots
// Body: {"date": "j1403/01/15" | null, "time": "14:00", "reason": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDisabledSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/disabled-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, disabledslots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/disabled-slots - Failed to create disabled slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/disabled-slots - Disabled slot created: id=%d, time=%s", result.ID, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
