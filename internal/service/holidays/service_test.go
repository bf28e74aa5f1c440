package holidays

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-BarberBooking/internal/service/holidays/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

type recordingCache struct{ invalidated []time.Time }

func (c *recordingCache) Invalidate(_ context.Context, date time.Time) error {
	c.invalidated = append(c.invalidated, date)
	return nil
}

func TestHolidayLifecycle(t *testing.T) {
	cache := &recordingCache{}
	svc := NewService(holiday.NewRepository(storagetest.NewSQLite(t)), cache, nil, logger.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateHolidayRequest{Date: "j1403/01/01", Reason: ptr.Ptr(" نوروز ")})
	require.NoError(t, err)
	assert.Equal(t, "j1403/01/01", created.Date)
	assert.Equal(t, "2024-03-20", created.GregorianDate)
	assert.Equal(t, "نوروز", created.Reason)

	noReason, err := svc.Create(ctx, &models.CreateHolidayRequest{Date: "j1403/01/13"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHolidayReason, noReason.Reason)

	_, err = svc.Create(ctx, &models.CreateHolidayRequest{Date: "1403/01/01"})
	assert.ErrorIs(t, err, ErrHolidayExists)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrHolidayNotFound)

	nowruz := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, nowruz, cache.invalidated[0])
	assert.Equal(t, nowruz, cache.invalidated[len(cache.invalidated)-1])
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(holiday.NewRepository(storagetest.NewSQLite(t)), nil, nil, logger.Nop())

	for _, req := range []*models.CreateHolidayRequest{
		{Date: ""},
		{Date: "j1403/02/32"},
		{Date: "j1403/01/05", Reason: ptr.Ptr(string(make([]rune, domain.MaxReasonLength+1)))},
	} {
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput, req.Date)
	}
}
