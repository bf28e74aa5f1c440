package list_working_hours

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/service/workinghours/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeService struct{ err error }

func (f fakeService) ListActive(ctx context.Context) ([]*models.WorkingHoursResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	date := "j1403/01/05"
	return []*models.WorkingHoursResponse{
		{StartTime: "09:00", EndTime: "21:00", IsActive: true},
		{Date: &date, StartTime: "10:00", EndTime: "14:00", IsActive: true},
	}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"internal", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(fakeService{err: tt.err}, logger.Nop()).
				Handle(w, httptest.NewRequest(http.MethodGet, "/admin/working-hours/all", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_Body(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(fakeService{}, logger.Nop()).
		Handle(w, httptest.NewRequest(http.MethodGet, "/admin/working-hours/all", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.WorkingHoursResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Date)
	require.NotNil(t, got[1].Date)
	assert.Equal(t, "j1403/01/05", *got[1].Date)
}
