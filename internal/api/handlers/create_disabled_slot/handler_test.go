package create_disabled_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/service/disabledslots"
	"github.com/m04kA/SMC-BarberBooking/internal/service/disabledslots/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type fakeService struct {
	err error
	got *models.CreateDisabledSlotRequest
}

func (f *fakeService) Create(ctx context.Context, req *models.CreateDisabledSlotRequest) (*models.DisabledSlotResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.DisabledSlotResponse{ID: 7, Date: req.Date, Time: types.TimeString(req.Time), Reason: req.Reason, IsActive: true}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"global slot", `{"time":"14:00","reason":"ناهار"}`, nil, http.StatusCreated},
		{"dated slot", `{"date":"j1403/01/15","time":"14:00","reason":"جلسه"}`, nil, http.StatusCreated},
		{"invalid input", `{"time":"14:30","reason":"x"}`, disabledslots.ErrInvalidInput, http.StatusBadRequest},
		{"unknown field", `{"time":"14:00","slot":1}`, nil, http.StatusBadRequest},
		{"internal", `{"time":"14:00","reason":"x"}`, disabledslots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			w := httptest.NewRecorder()
			NewHandler(svc, logger.Nop()).
				Handle(w, httptest.NewRequest(http.MethodPost, "/admin/disabled-slots", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandleGlobalSlotHasNullDate(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).
		Handle(w, httptest.NewRequest(http.MethodPost, "/admin/disabled-slots", strings.NewReader(`{"time":"14:00","reason":"ناهار"}`)))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.got)
	assert.Nil(t, svc.got.Date)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp["date"])
	assert.Equal(t, "14:00", resp["time"])
}
