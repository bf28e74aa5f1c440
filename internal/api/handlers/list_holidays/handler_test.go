package list_holidays

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/service/holidays/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeService struct{ err error }

func (f fakeService) List(ctx context.Context) ([]*models.HolidayResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*models.HolidayResponse{{ID: 1, Date: "j1403/01/01", GregorianDate: "2024-03-20", Reason: "نوروز"}}, nil
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
				Handle(w, httptest.NewRequest(http.MethodGet, "/admin/holidays", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_Body(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(fakeService{}, logger.Nop()).
		Handle(w, httptest.NewRequest(http.MethodGet, "/admin/holidays", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.HolidayResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "j1403/01/01", got[0].Date)
	assert.Equal(t, "نوروز", got[0].Reason)
}
