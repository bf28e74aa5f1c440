package get_statistics

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/statistics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Statistics(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/statistics - Failed to compute statistics: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
