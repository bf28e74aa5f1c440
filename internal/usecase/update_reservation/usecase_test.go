package update_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var (
	day1 = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC) // j1403/01/01
	day2 = time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC) // j1403/01/02
)

type recordingCache struct{ invalidated []time.Time }

func (c *recordingCache) Invalidate(_ context.Context, date time.Time) error {
	c.invalidated = append(c.invalidated, date)
	return nil
}

func setup(t *testing.T) (*UseCase, *reservation.Repository, *recordingCache) {
	db := storagetest.NewSQLite(t)
	repo := reservation.NewRepository(db)
	cache := &recordingCache{}
	uc := NewUseCase(repo, txmanager.NewTransactionManager(dbmetrics.SqlDB{DB: db}), cache, nil, logger.Nop())
	return uc, repo, cache
}

func seed(t *testing.T, repo *reservation.Repository, name string, date time.Time, at types.TimeString) *domain.Reservation {
	res, err := repo.Create(context.Background(), &domain.Reservation{
		CustomerName: name,
		PhoneNumber:  "09123456789",
		Date:         date,
		Time:         at,
	})
	require.NoError(t, err)
	return res
}

func TestExecute_MovesReservation(t *testing.T) {
	uc, repo, cache := setup(t)
	ctx := context.Background()

	res := seed(t, repo, "Ali", day1, "10:00")

	resp, err := uc.Execute(ctx, &Request{ID: res.ID, CustomerName: "Ali R", PhoneNumber: "09350000000", Date: "j1403/01/02", Time: "11:00"})
	require.NoError(t, err)
	assert.Equal(t, "j1403/01/02", resp.Date)
	assert.Equal(t, "2024-03-21", resp.GregorianDate)

	got, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ali R", got.CustomerName)
	assert.Equal(t, "09350000000", got.PhoneNumber)
	assert.Equal(t, day2, got.Date)
	assert.Equal(t, "11:00", got.Time.String())

	assert.Equal(t, []time.Time{day1, day2}, cache.invalidated)
}

func TestExecute_SameSlotKeepsItself(t *testing.T) {
	uc, repo, _ := setup(t)

	res := seed(t, repo, "Ali", day1, "10:00")

	_, err := uc.Execute(context.Background(), &Request{ID: res.ID, CustomerName: "Ali Rezaei", PhoneNumber: "09123456789", Date: "j1403/01/01", Time: "10:00"})
	assert.NoError(t, err)
}

func TestExecute_SlotTakenByAnother(t *testing.T) {
	uc, repo, _ := setup(t)

	seed(t, repo, "Ali", day1, "10:00")
	other := seed(t, repo, "Reza", day2, "10:00")

	_, err := uc.Execute(context.Background(), &Request{ID: other.ID, CustomerName: "Reza", PhoneNumber: "09123456789", Date: "j1403/01/01", Time: "10:00"})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{ID: 42, CustomerName: "Ali", PhoneNumber: "09123456789", Date: "j1403/01/01", Time: "10:00"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _ := setup(t)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"zero id", Request{CustomerName: "A", PhoneNumber: "09123456789", Date: "j1403/01/01", Time: "10:00"}, ErrInvalidInput},
		{"missing name", Request{ID: 1, PhoneNumber: "09123456789", Date: "j1403/01/01", Time: "10:00"}, ErrInvalidInput},
		{"bad phone", Request{ID: 1, CustomerName: "A", PhoneNumber: "9123456789", Date: "j1403/01/01", Time: "10:00"}, ErrInvalidPhone},
		{"bad date", Request{ID: 1, CustomerName: "A", PhoneNumber: "09123456789", Date: "1403/00/01", Time: "10:00"}, ErrInvalidDate},
		{"bad time", Request{ID: 1, CustomerName: "A", PhoneNumber: "09123456789", Date: "j1403/01/01", Time: "noon"}, ErrInvalidTime},
		{"half hour", Request{ID: 1, CustomerName: "A", PhoneNumber: "09123456789", Date: "j1403/01/01", Time: "14:30"}, ErrInvalidTime},
		{"late minute", Request{ID: 1, CustomerName: "A", PhoneNumber: "09123456789", Date: "j1403/01/01", Time: "23:59"}, ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
