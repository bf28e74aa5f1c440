package delete_disabled_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/disabledslots"
)

const (
	msgInvalidID = "شناسه نامعتبر است"
	msgNotFound  = "ساعت غیرفعال یافت نشد"
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

// Handle DELETE /api/v1/admin/disabled-slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, disabledslots.ErrDisabledSlotNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/disabled-slots/{id} - Failed to delete disabled slot: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/disabled-slots/{id} - Disabled slot deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
