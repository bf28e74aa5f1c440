package create_reservation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	createReservation "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createReservation.Response)
	return resp, args.Error(1)
}

const body = `{"customer_name":"Ali","phone_number":"09123456789","date":"j1403/01/15","time":"14:00"}`

func TestHandle_Created(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, &createReservation.Request{
		CustomerName: "Ali", PhoneNumber: "09123456789", Date: "j1403/01/15", Time: "14:00",
	}).Return(&createReservation.Response{
		ID: 7, CustomerName: "Ali", PhoneNumber: "09123456789",
		Date: "j1403/01/15", GregorianDate: "2024-04-03", Time: "14:00",
		CreatedAt: time.Date(2024, 3, 30, 8, 0, 0, 0, time.UTC),
	}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"id": 7, "customer_name": "Ali", "phone_number": "09123456789",
		"date": "j1403/01/15", "gregorian_date": "2024-04-03", "time": "14:00",
		"created_at": "2024-03-30T08:00:00Z"
	}`, w.Body.String())
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{createReservation.ErrInvalidInput, http.StatusBadRequest, msgMissingFields},
		{createReservation.ErrInvalidPhone, http.StatusBadRequest, msgInvalidPhone},
		{createReservation.ErrInvalidDate, http.StatusBadRequest, msgInvalidDate},
		{createReservation.ErrDateInPast, http.StatusBadRequest, msgDateInPast},
		{createReservation.ErrHoliday, http.StatusBadRequest, msgHoliday},
		{createReservation.ErrOutsideWorkingHours, http.StatusBadRequest, msgOutsideWorkingHours},
		{createReservation.ErrSlotDisabled, http.StatusConflict, msgSlotDisabled},
		{fmt.Errorf("%w: tx", createReservation.ErrSlotTaken), http.StatusConflict, msgSlotTaken},
		{createReservation.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(uc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

			assert.Equal(t, tt.code, w.Code)
			if tt.msg != "" {
				assert.JSONEq(t, `{"error":"`+tt.msg+`"}`, w.Body.String())
			}
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &useCaseMock{}

	w := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
