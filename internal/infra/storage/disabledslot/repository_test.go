package disabledslot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

func TestDisabledSlots(t *testing.T) {
	repo := NewRepository(storagetest.NewSQLite(t))
	ctx := context.Background()

	day := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	other := day.AddDate(0, 0, 1)

	onDay, err := repo.Create(ctx, &domain.DisabledSlot{Date: ptr.Ptr(day), Time: "15:00", Reason: "ناهار"})
	require.NoError(t, err)
	assert.True(t, onDay.IsActive)

	_, err = repo.Create(ctx, &domain.DisabledSlot{Date: ptr.Ptr(other), Time: "11:00", Reason: "تعمیر"})
	require.NoError(t, err)
	global, err := repo.Create(ctx, &domain.DisabledSlot{Time: "13:00", Reason: "استراحت"})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].IsGlobal())
	assert.Equal(t, global.ID, all[0].ID)
	assert.Equal(t, day, *all[1].Date)

	specificOnly, err := repo.ListActiveForDate(ctx, day, false)
	require.NoError(t, err)
	require.Len(t, specificOnly, 1)
	assert.Equal(t, types.TimeString("15:00"), specificOnly[0].Time)

	withGlobal, err := repo.ListActiveForDate(ctx, day, true)
	require.NoError(t, err)
	assert.Len(t, withGlobal, 2)

	deleted, err := repo.Delete(ctx, onDay.ID)
	require.NoError(t, err)
	assert.Equal(t, "ناهار", deleted.Reason)

	_, err = repo.Delete(ctx, onDay.ID)
	assert.ErrorIs(t, err, ErrDisabledSlotNotFound)

	specificOnly, err = repo.ListActiveForDate(ctx, day, false)
	require.NoError(t, err)
	assert.Empty(t, specificOnly)
}
