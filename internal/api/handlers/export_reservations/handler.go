package export_reservations

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/service/reservations"
	"github.com/m04kA/SMC-BarberBooking/internal/service/reservations/models"
)

const (
	contentTypeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	msgInvalidFilter = "پارامترهای جستجو نامعتبر است"
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

// Handle GET /api/v1/admin/reservations/export
// Те же фильтры, что у списка; ответ - файл xlsx
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListReservationsRequest{
		Query: query.Get("q"),
		Date:  query.Get("date"),
		Time:  query.Get("time"),
	}

	// файл собирается целиком, чтобы ошибка не оборвала уже начатый ответ
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), req, &buf); err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidFilter):
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/reservations/export - Failed to export: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	filename := fmt.Sprintf("reservations-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /admin/reservations/export - Failed to write response: %v", err)
	}
}
