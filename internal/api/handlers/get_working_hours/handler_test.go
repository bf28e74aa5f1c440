package get_working_hours

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/service/workinghours"
	"github.com/m04kA/SMC-BarberBooking/internal/service/workinghours/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type fakeService struct {
	err      error
	lastDate string
}

func (f *fakeService) Get(ctx context.Context, date string) (*models.WorkingHoursResponse, error) {
	f.lastDate = date
	if f.err != nil {
		return nil, f.err
	}
	return &models.WorkingHoursResponse{StartTime: "09:00", EndTime: "21:00", IsActive: true, Source: "default"}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"invalid date", workinghours.ErrInvalidInput, http.StatusBadRequest},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			w := httptest.NewRecorder()
			NewHandler(svc, logger.Nop()).
				Handle(w, httptest.NewRequest(http.MethodGet, "/admin/working-hours?date=j1403/01/05", nil))
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, "j1403/01/05", svc.lastDate)
		})
	}
}

func TestHandle_Body(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.Nop()).
		Handle(w, httptest.NewRequest(http.MethodGet, "/admin/working-hours", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.WorkingHoursResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, types.TimeString("09:00"), got.StartTime)
	assert.Equal(t, types.TimeString("21:00"), got.EndTime)
}
