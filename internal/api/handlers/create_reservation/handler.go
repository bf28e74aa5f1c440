package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "بدنه درخواست نامعتبر است"
	msgMissingFields       = "لطفا تمام فیلدها را پر کنید"
	msgInvalidPhone        = "شماره تلفن نامعتبر است"
	msgInvalidDate         = "تاریخ نامعتبر است"
	msgInvalidTime         = "ساعت نامعتبر است"
	msgDateInPast          = "امکان رزرو برای زمان گذشته وجود ندارد"
	msgHoliday             = "این روز تعطیل است"
	msgOutsideWorkingHours = "این ساعت خارج از ساعات کاری است"
	msgSlotDisabled        = "این ساعت غیرفعال است"
	msgSlotTaken           = "این زمان قبلا رزرو شده است"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, createReservation.ErrInvalidPhone):
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, createReservation.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, createReservation.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createReservation.ErrHoliday):
			handlers.RespondBadRequest(w, msgHoliday)

		case errors.Is(err, createReservation.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createReservation.ErrSlotDisabled):
			h.logger.Warn("POST /reservations - Slot disabled: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotDisabled)

		case errors.Is(err, createReservation.ErrSlotTaken):
			h.logger.Warn("POST /reservations - Slot taken: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, date=%s, time=%s",
		result.ID, result.GregorianDate, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
