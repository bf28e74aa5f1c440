package workinghours

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-BarberBooking/internal/service/workinghours/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type recordingCache struct {
	dates []time.Time
	all   int
}

func (c *recordingCache) Invalidate(_ context.Context, date time.Time) error {
	c.dates = append(c.dates, date)
	return nil
}

func (c *recordingCache) InvalidateAll(context.Context) error {
	c.all++
	return nil
}

type recordingNotifier struct{ events []domain.ScheduleEvent }

func (n *recordingNotifier) Publish(e domain.ScheduleEvent) { n.events = append(n.events, e) }

func setup(t *testing.T) (*Service, *recordingCache, *recordingNotifier) {
	db := storagetest.NewSQLite(t)
	cache := &recordingCache{}
	notifier := &recordingNotifier{}
	svc := NewService(workinghours.NewRepository(db), txmanager.NewTransactionManager(dbmetrics.SqlDB{DB: db}), cache, notifier, logger.Nop())
	return svc, cache, notifier
}

func TestGet_BuiltinDefault(t *testing.T) {
	svc, _, _ := setup(t)

	got, err := svc.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.SourceBuiltin, got.Source)
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
	assert.Equal(t, types.TimeString("20:00"), got.EndTime)
	assert.Nil(t, got.ID)
}

func TestUpdate_DefaultAndDate(t *testing.T) {
	svc, cache, notifier := setup(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, &models.UpdateWorkingHoursRequest{StartTime: "09:00", EndTime: "17:00"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.all)

	second, err := svc.Update(ctx, &models.UpdateWorkingHoursRequest{StartTime: "11:00", EndTime: "19:00"})
	require.NoError(t, err)
	assert.Equal(t, models.SourceDefault, second.Source)

	forDate, err := svc.Update(ctx, &models.UpdateWorkingHoursRequest{Date: ptr.Ptr("j1403/01/01"), StartTime: "12:00", EndTime: "14:00"})
	require.NoError(t, err)
	require.NotNil(t, forDate.Date)
	assert.Equal(t, "j1403/01/01", *forDate.Date)
	assert.Equal(t, []time.Time{time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)}, cache.dates)
	assert.Len(t, notifier.events, 3)

	def, err := svc.Get(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), def.StartTime)

	day, err := svc.Get(ctx, "j1403/01/01")
	require.NoError(t, err)
	assert.Equal(t, models.SourceDate, day.Source)
	assert.Equal(t, types.TimeString("12:00"), day.StartTime)

	other, err := svc.Get(ctx, "j1403/01/02")
	require.NoError(t, err)
	assert.Equal(t, models.SourceDefault, other.Source)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	history, err := svc.History(ctx, "")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].IsActive)
	assert.False(t, history[1].IsActive)
}

func TestReset_RevertsToDefault(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, &models.UpdateWorkingHoursRequest{Date: ptr.Ptr("j1403/01/01"), StartTime: "12:00", EndTime: "14:00"})
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "j1403/01/01"))

	got, err := svc.Get(ctx, "j1403/01/01")
	require.NoError(t, err)
	assert.Equal(t, models.SourceBuiltin, got.Source)

	assert.ErrorIs(t, svc.Reset(ctx, "j1403/01/01"), ErrWorkingHoursNotFound)
}

func TestUpdate_Validation(t *testing.T) {
	svc, _, _ := setup(t)

	tests := []struct {
		name    string
		req     models.UpdateWorkingHoursRequest
		wantErr error
	}{
		{"missing start", models.UpdateWorkingHoursRequest{EndTime: "18:00"}, ErrInvalidInput},
		{"bad format", models.UpdateWorkingHoursRequest{StartTime: "nine", EndTime: "18:00"}, ErrInvalidInput},
		{"half hour", models.UpdateWorkingHoursRequest{StartTime: "09:30", EndTime: "18:00"}, ErrInvalidInput},
		{"reversed", models.UpdateWorkingHoursRequest{StartTime: "18:00", EndTime: "09:00"}, ErrInvalidTimeRange},
		{"empty window", models.UpdateWorkingHoursRequest{StartTime: "09:00", EndTime: "09:00"}, ErrInvalidTimeRange},
		{"bad date", models.UpdateWorkingHoursRequest{Date: ptr.Ptr("j1403/14/01"), StartTime: "09:00", EndTime: "18:00"}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
