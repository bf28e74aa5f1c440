package get_statistics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeService struct{ err error }

func (f fakeService) Statistics(ctx context.Context) (*models.StatisticsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.StatisticsResponse{Total: 7, Today: 2, ThisMonth: 5, MonthName: "فروردین", BookedDays: 3, AveragePerDay: 2.33}, nil
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
				Handle(w, httptest.NewRequest(http.MethodGet, "/admin/statistics", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_Body(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(fakeService{}, logger.Nop()).
		Handle(w, httptest.NewRequest(http.MethodGet, "/admin/statistics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.StatisticsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, 7, got.Total)
	assert.Equal(t, "فروردین", got.MonthName)
	assert.Nil(t, got.MostPopularTime)
}
