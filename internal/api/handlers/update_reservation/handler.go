package update_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	updateReservation "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_reservation"
)

const (
	msgInvalidID          = "شناسه رزرو نامعتبر است"
	msgInvalidRequestBody = "بدنه درخواست نامعتبر است"
	msgMissingFields      = "لطفا تمام فیلدها را پر کنید"
	msgInvalidPhone       = "شماره تلفن نامعتبر است"
	msgInvalidDate        = "تاریخ نامعتبر است"
	msgInvalidTime        = "ساعت نامعتبر است"
	msgNotFound           = "رزرو یافت نشد"
	msgSlotTaken          = "این زمان قبلا رزرو شده است"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, updateReservation.ErrInvalidPhone):
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, updateReservation.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, updateReservation.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /admin/reservations/{id} - Reservation not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrSlotTaken):
			h.logger.Warn("PUT /admin/reservations/{id} - Slot taken: id=%d, date=%s, time=%s", id, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("PUT /admin/reservations/{id} - Failed to update reservation: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/reservations/{id} - Reservation updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
