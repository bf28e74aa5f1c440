package get_today

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

type Handler struct {
	service CalendarService
}

func NewHandler(service CalendarService) *Handler {
	return &Handler{service: service}
}

// Handle GET /api/v1/today
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Today())
}
