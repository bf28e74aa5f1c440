package get_available_slots

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/cache/slotcache"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/disabledslot"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// 1403/01/01 = 2024-03-20 (среда)
var nowruz = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

type fixture struct {
	db           *sql.DB
	holidays     *holiday.Repository
	workingHours *workinghours.Repository
	reservations *reservation.Repository
	disabled     *disabledslot.Repository
}

func newFixture(t *testing.T) *fixture {
	db := storagetest.NewSQLite(t)
	return &fixture{
		db:           db,
		holidays:     holiday.NewRepository(db),
		workingHours: workinghours.NewRepository(db),
		reservations: reservation.NewRepository(db),
		disabled:     disabledslot.NewRepository(db),
	}
}

func (f *fixture) useCase(cache SlotCache, opts Options) *UseCase {
	return NewUseCase(f.holidays, f.workingHours, f.reservations, f.disabled, cache, opts, logger.Nop())
}

type memoryCache struct {
	items map[string]*domain.DaySchedule
	sets  int
}

func (c *memoryCache) Get(_ context.Context, date time.Time) (*domain.DaySchedule, bool, error) {
	s, ok := c.items[domain.FormatDate(date)]
	return s, ok, nil
}

func (c *memoryCache) Generation(_ context.Context, _ time.Time) (string, error) {
	return "0", nil
}

func (c *memoryCache) Set(_ context.Context, s *domain.DaySchedule, _ string) error {
	c.items[domain.FormatDate(s.Date)] = s
	c.sets++
	return nil
}

func slotTimes(slots []Slot) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time)
	}
	return out
}

func TestExecute_DefaultWindow(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase(nil, Options{}).Execute(context.Background(), &Request{Date: "j1403/01/01"})
	require.NoError(t, err)

	assert.Equal(t, "j1403/01/01", resp.Date)
	assert.Equal(t, "2024-03-20", resp.GregorianDate)
	assert.Equal(t, "چهارشنبه", resp.Weekday)
	assert.False(t, resp.IsHoliday)
	assert.Nil(t, resp.Reason)
	assert.Equal(t, WorkingHours{StartTime: "10:00", EndTime: "20:00"}, resp.WorkingHours)
	require.Len(t, resp.Slots, 10)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].Time)
	assert.Equal(t, types.TimeString("19:00"), resp.Slots[9].Time)
	for _, s := range resp.Slots {
		assert.True(t, s.Available)
		assert.False(t, s.Disabled)
	}
}

func TestExecute_Holiday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.holidays.Create(ctx, &domain.Holiday{Date: nowruz})
	require.NoError(t, err)
	_, err = f.reservations.Create(ctx, &domain.Reservation{CustomerName: "Ali", PhoneNumber: "09123456789", Date: nowruz, Time: "10:00"})
	require.NoError(t, err)

	resp, err := f.useCase(nil, Options{}).Execute(ctx, &Request{Date: "1403/01/01"})
	require.NoError(t, err)

	assert.True(t, resp.IsHoliday)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, domain.DefaultHolidayReason, *resp.Reason)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OverlaysBookingsAndDisabledSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.workingHours.Append(ctx, &domain.WorkingHours{StartTime: "09:00", EndTime: "18:00", IsActive: true})
	require.NoError(t, err)
	_, err = f.workingHours.Append(ctx, &domain.WorkingHours{Date: ptr.Ptr(nowruz), StartTime: "12:00", EndTime: "16:00", IsActive: true})
	require.NoError(t, err)
	_, err = f.reservations.Create(ctx, &domain.Reservation{CustomerName: "Ali", PhoneNumber: "09123456789", Date: nowruz, Time: "13:00"})
	require.NoError(t, err)
	_, err = f.disabled.Create(ctx, &domain.DisabledSlot{Date: ptr.Ptr(nowruz), Time: "14:00", Reason: "break", IsActive: true})
	require.NoError(t, err)
	_, err = f.disabled.Create(ctx, &domain.DisabledSlot{Date: ptr.Ptr(nowruz.AddDate(0, 0, 1)), Time: "15:00", Reason: "other day", IsActive: true})
	require.NoError(t, err)

	resp, err := f.useCase(nil, Options{}).Execute(ctx, &Request{Date: "j1403/01/01"})
	require.NoError(t, err)

	assert.Equal(t, WorkingHours{StartTime: "12:00", EndTime: "16:00"}, resp.WorkingHours)
	assert.Equal(t, []Slot{
		{Time: "12:00", Available: true},
		{Time: "13:00", Available: false},
		{Time: "14:00", Available: false, Disabled: true},
		{Time: "15:00", Available: true},
	}, resp.Slots)

	// соседний день использует окно по умолчанию
	next, err := f.useCase(nil, Options{}).Execute(ctx, &Request{Date: "j1403/01/02"})
	require.NoError(t, err)
	assert.Equal(t, WorkingHours{StartTime: "09:00", EndTime: "18:00"}, next.WorkingHours)
	assert.Len(t, next.Slots, 9)
}

func TestExecute_GlobalDisabledSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.disabled.Create(ctx, &domain.DisabledSlot{Time: "10:00", Reason: "every day", IsActive: true})
	require.NoError(t, err)

	withGlobal, err := f.useCase(nil, Options{ApplyGlobalDisabledSlots: true}).Execute(ctx, &Request{Date: "j1403/01/01"})
	require.NoError(t, err)
	assert.Equal(t, Slot{Time: "10:00", Available: false, Disabled: true}, withGlobal.Slots[0])

	withoutGlobal, err := f.useCase(nil, Options{}).Execute(ctx, &Request{Date: "j1403/01/01"})
	require.NoError(t, err)
	assert.Equal(t, Slot{Time: "10:00", Available: true}, withoutGlobal.Slots[0])
}

func TestExecute_InvalidDate(t *testing.T) {
	f := newFixture(t)

	for _, date := range []string{"", "abc", "j1403/13/01", "j1402/12/30", "1403/01"} {
		_, err := f.useCase(nil, Options{}).Execute(context.Background(), &Request{Date: date})
		assert.ErrorIs(t, err, ErrInvalidDate, date)
	}
}

func TestExecute_UsesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cache := &memoryCache{items: map[string]*domain.DaySchedule{}}
	uc := f.useCase(cache, Options{})

	first, err := uc.Execute(ctx, &Request{Date: "j1403/01/01"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// бронирование в обход use case не видно, пока кэш не сброшен
	_, err = f.reservations.Create(ctx, &domain.Reservation{CustomerName: "Ali", PhoneNumber: "09123456789", Date: nowruz, Time: "10:00"})
	require.NoError(t, err)

	second, err := uc.Execute(ctx, &Request{Date: "j1403/01/01"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)

	delete(cache.items, "2024-03-20")
	third, err := uc.Execute(ctx, &Request{Date: "j1403/01/01"})
	require.NoError(t, err)
	assert.False(t, third.Slots[0].Available)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, slotTimes(third.Slots)[:2])
}

// racingCache перед записью в кэш выполняет бронирование и сброс даты,
// как create_reservation после коммита
type racingCache struct {
	*slotcache.Cache
	beforeSet func()
}

func (c *racingCache) Set(ctx context.Context, s *domain.DaySchedule, generation string) error {
	if c.beforeSet != nil {
		c.beforeSet()
		c.beforeSet = nil
	}
	return c.Cache.Set(ctx, s, generation)
}

func TestExecute_ReservationDuringComputationIsNotHiddenByCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache := &racingCache{Cache: slotcache.New(client, "", time.Minute, nil)}
	cache.beforeSet = func() {
		_, err := f.reservations.Create(ctx, &domain.Reservation{CustomerName: "Ali", PhoneNumber: "09123456789", Date: nowruz, Time: "14:00"})
		require.NoError(t, err)
		require.NoError(t, cache.Invalidate(ctx, nowruz))
	}
	uc := f.useCase(cache, Options{})

	first, err := uc.Execute(ctx, &Request{Date: "j1403/01/01"})
	require.NoError(t, err)
	assert.True(t, slotByTime(first.Slots, "14:00").Available)

	second, err := uc.Execute(ctx, &Request{Date: "j1403/01/01"})
	require.NoError(t, err)
	assert.False(t, slotByTime(second.Slots, "14:00").Available)
}

func slotByTime(slots []Slot, t types.TimeString) Slot {
	for _, s := range slots {
		if s.Time == t {
			return s
		}
	}
	return Slot{}
}
