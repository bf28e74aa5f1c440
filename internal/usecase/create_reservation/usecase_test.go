package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/disabledslot"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
)

// 1403/01/01 = 2024-03-20
var nowruz = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type recordingCache struct{ invalidated []time.Time }

func (c *recordingCache) Invalidate(_ context.Context, date time.Time) error {
	c.invalidated = append(c.invalidated, date)
	return nil
}

type recordingNotifier struct{ events []domain.ScheduleEvent }

func (n *recordingNotifier) Publish(e domain.ScheduleEvent) { n.events = append(n.events, e) }

type countingMetrics struct{ results map[string]int }

func (m *countingMetrics) ReservationResult(result string) { m.results[result]++ }

type env struct {
	uc           *UseCase
	holidays     *holiday.Repository
	disabled     *disabledslot.Repository
	reservations *reservation.Repository
	cache        *recordingCache
	notifier     *recordingNotifier
	metrics      *countingMetrics
}

func newEnv(t *testing.T, now time.Time) *env {
	db := storagetest.NewSQLite(t)
	log := logger.Nop()

	e := &env{
		holidays:     holiday.NewRepository(db),
		disabled:     disabledslot.NewRepository(db),
		reservations: reservation.NewRepository(db),
		cache:        &recordingCache{},
		notifier:     &recordingNotifier{},
		metrics:      &countingMetrics{results: map[string]int{}},
	}

	resolver := get_available_slots.NewUseCase(
		e.holidays,
		workinghours.NewRepository(db),
		e.reservations,
		e.disabled,
		nil,
		get_available_slots.Options{ApplyGlobalDisabledSlots: true},
		log,
	)

	e.uc = NewUseCase(
		resolver,
		e.reservations,
		txmanager.NewTransactionManager(dbmetrics.SqlDB{DB: db}),
		e.cache,
		e.notifier,
		e.metrics,
		time.UTC,
		log,
	)
	e.uc.timeProvider = fixedTime{t: now}
	return e
}

func validRequest() *Request {
	return &Request{CustomerName: "Ali", PhoneNumber: "09123456789", Date: "j1403/01/01", Time: "14:00"}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv(t, nowruz.Add(-24*time.Hour))

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "j1403/01/01", resp.Date)
	assert.Equal(t, "2024-03-20", resp.GregorianDate)
	assert.Equal(t, "14:00", resp.Time.String())

	stored, err := e.reservations.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, nowruz, stored.Date)

	assert.Equal(t, []time.Time{nowruz}, e.cache.invalidated)
	require.Len(t, e.notifier.events, 1)
	assert.Equal(t, domain.EventReservationCreated, e.notifier.events[0].Type)
	assert.Equal(t, 1, e.metrics.results[resultCreated])
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"missing name", func(r *Request) { r.CustomerName = "  " }, ErrInvalidInput},
		{"missing phone", func(r *Request) { r.PhoneNumber = "" }, ErrInvalidInput},
		{"missing date", func(r *Request) { r.Date = "" }, ErrInvalidInput},
		{"missing time", func(r *Request) { r.Time = "" }, ErrInvalidInput},
		{"short phone", func(r *Request) { r.PhoneNumber = "0912345678" }, ErrInvalidPhone},
		{"phone prefix", func(r *Request) { r.PhoneNumber = "08123456789" }, ErrInvalidPhone},
		{"bad date", func(r *Request) { r.Date = "j1403/13/40" }, ErrInvalidDate},
		{"bad time", func(r *Request) { r.Time = "25:00" }, ErrInvalidTime},
		{"not on the hour", func(r *Request) { r.Time = "14:30" }, ErrInvalidTime},
		{"past date", func(r *Request) { r.Date = "j1402/12/28" }, ErrDateInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, nowruz.Add(-24*time.Hour))
			req := validRequest()
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, e.metrics.results[resultRejected])
			assert.Empty(t, e.notifier.events)
		})
	}
}

func TestExecute_SlotAlreadyStartedToday(t *testing.T) {
	e := newEnv(t, nowruz.Add(14*time.Hour+10*time.Minute))

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateInPast)

	req := validRequest()
	req.Time = "15:00"
	_, err = e.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_Availability(t *testing.T) {
	ctx := context.Background()
	now := nowruz.Add(-24 * time.Hour)

	t.Run("holiday", func(t *testing.T) {
		e := newEnv(t, now)
		_, err := e.holidays.Create(ctx, &domain.Holiday{Date: nowruz, Reason: ptr.Ptr("نوروز")})
		require.NoError(t, err)

		_, err = e.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrHoliday)
	})

	t.Run("outside working hours", func(t *testing.T) {
		e := newEnv(t, now)
		req := validRequest()
		req.Time = "20:00"

		_, err := e.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("disabled slot", func(t *testing.T) {
		e := newEnv(t, now)
		_, err := e.disabled.Create(ctx, &domain.DisabledSlot{Date: ptr.Ptr(nowruz), Time: "14:00", Reason: "break", IsActive: true})
		require.NoError(t, err)

		_, err = e.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotDisabled)
		assert.Equal(t, 1, e.metrics.results[resultConflict])
	})

	t.Run("already booked", func(t *testing.T) {
		e := newEnv(t, now)
		_, err := e.uc.Execute(ctx, validRequest())
		require.NoError(t, err)

		second := validRequest()
		second.CustomerName = "Reza"
		second.PhoneNumber = "09351234567"
		_, err = e.uc.Execute(ctx, second)
		assert.ErrorIs(t, err, ErrSlotTaken)

		list, err := e.reservations.GetByDate(ctx, nowruz)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, 1, e.metrics.results[resultConflict])
	})
}
