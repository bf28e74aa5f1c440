package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

const (
	statusUp       = "up"
	statusDown     = "down"
	statusDisabled = "disabled"

	pingTimeout = 2 * time.Second
)

// Response состояние сервиса
type Response struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Cache    string    `json:"cache"`
	Time     time.Time `json:"time"`
}

type Handler struct {
	db     Pinger
	cache  Pinger // nil, если кэш выключен
	logger Logger
}

func NewHandler(db Pinger, cache Pinger, logger Logger) *Handler {
	return &Handler{db: db, cache: cache, logger: logger}
}

// Handle GET /api/v1/health
// Недоступная база дает 503; недоступный кэш только отражается в ответе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := Response{Status: "ok", Database: statusUp, Cache: statusDisabled, Time: time.Now().UTC()}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /health - Database ping failed: %v", err)
		resp.Status = "degraded"
		resp.Database = statusDown
		status = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		resp.Cache = statusUp
		if err := h.cache.PingContext(ctx); err != nil {
			h.logger.Warn("GET /health - Cache ping failed: %v", err)
			resp.Cache = statusDown
		}
	}

	handlers.RespondJSON(w, status, resp)
}
