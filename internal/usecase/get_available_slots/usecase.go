package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	holidayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// UseCase use case расчета доступных слотов на день
type UseCase struct {
	holidayRepo      HolidayRepository
	workingHoursRepo WorkingHoursRepository
	reservationRepo  ReservationRepository
	disabledSlotRepo DisabledSlotRepository
	cache            SlotCache
	options          Options
	logger           Logger
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil: тогда расписание всегда рассчитывается заново.
func NewUseCase(
	holidayRepo HolidayRepository,
	workingHoursRepo WorkingHoursRepository,
	reservationRepo ReservationRepository,
	disabledSlotRepo DisabledSlotRepository,
	cache SlotCache,
	options Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		holidayRepo:      holidayRepo,
		workingHoursRepo: workingHoursRepo,
		reservationRepo:  reservationRepo,
		disabledSlotRepo: disabledSlotRepo,
		cache:            cache,
		options:          options,
		logger:           logger,
	}
}

// Execute возвращает расписание дня по дате солнечной хиджры
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date)

	// 1. Переводим дату в григорианский календарь
	date, err := jalali.ParseToTime(req.Date, time.UTC)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// 2. Пробуем кэш
	if schedule := uc.fromCache(ctx, date); schedule != nil {
		return toResponse(schedule), nil
	}

	// 3. Поколение даты фиксируется до чтения базы
	generation, cacheable := uc.generation(ctx, date)

	// 4. Рассчитываем расписание
	schedule, err := uc.ResolveDay(ctx, date)
	if err != nil {
		return nil, err
	}

	// 5. Сохраняем в кэш, ошибка кэша не прерывает запрос
	if cacheable {
		if err := uc.cache.Set(ctx, schedule, generation); err != nil {
			uc.logger.Warn("GetAvailableSlots: failed to cache schedule for %s: %v", domain.FormatDate(date), err)
		}
	}

	uc.logger.Info("GetAvailableSlots: date=%s holiday=%t slots=%d available=%d",
		domain.FormatDate(date), schedule.IsHoliday, len(schedule.Slots), schedule.AvailableCount())

	return toResponse(schedule), nil
}

// ResolveDay рассчитывает расписание григорианской даты без кэша.
// Порядок: выходной, рабочее окно, часовые слоты, бронирования, отключенные слоты.
func (uc *UseCase) ResolveDay(ctx context.Context, date time.Time) (*domain.DaySchedule, error) {
	day := domain.DateOnly(date)
	schedule := &domain.DaySchedule{Date: day, Slots: []domain.Slot{}}

	// 1. Выходной день закрывает все слоты
	holiday, err := uc.holidayRepo.GetByDate(ctx, day)
	if err != nil && !errors.Is(err, holidayRepo.ErrHolidayNotFound) {
		uc.logger.Error("ResolveDay: failed to get holiday for %s: %v", domain.FormatDate(day), err)
		return nil, fmt.Errorf("%w: failed to get holiday: %w", ErrInternal, err)
	}
	if holiday != nil {
		schedule.IsHoliday = true
		schedule.HolidayReason = holiday.ReasonOrDefault()
		return schedule, nil
	}

	// 2. Рабочее окно из журнала рабочих часов
	log, err := uc.workingHoursRepo.ListActiveForDate(ctx, day)
	if err != nil {
		uc.logger.Error("ResolveDay: failed to get working hours for %s: %v", domain.FormatDate(day), err)
		return nil, fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}
	schedule.WorkingHours = domain.ResolveWorkingWindow(log, day)

	// 3. Занятые слоты
	reservations, err := uc.reservationRepo.GetByDate(ctx, day)
	if err != nil {
		uc.logger.Error("ResolveDay: failed to get reservations for %s: %v", domain.FormatDate(day), err)
		return nil, fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
	}
	booked := make(map[types.TimeString]bool, len(reservations))
	for _, r := range reservations {
		booked[r.Time] = true
	}

	// 4. Отключенные администратором слоты
	disabledSlots, err := uc.disabledSlotRepo.ListActiveForDate(ctx, day, uc.options.ApplyGlobalDisabledSlots)
	if err != nil {
		uc.logger.Error("ResolveDay: failed to get disabled slots for %s: %v", domain.FormatDate(day), err)
		return nil, fmt.Errorf("%w: failed to get disabled slots: %w", ErrInternal, err)
	}
	disabled := make(map[types.TimeString]bool, len(disabledSlots))
	for _, s := range disabledSlots {
		disabled[s.Time] = true
	}

	// 5. Собираем слоты
	for _, t := range schedule.WorkingHours.SlotTimes() {
		schedule.Slots = append(schedule.Slots, domain.Slot{
			Time:      t,
			Available: !booked[t] && !disabled[t],
			Disabled:  disabled[t],
		})
	}

	return schedule, nil
}

func (uc *UseCase) generation(ctx context.Context, date time.Time) (string, bool) {
	if uc.cache == nil {
		return "", false
	}

	generation, err := uc.cache.Generation(ctx, date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache generation read failed for %s: %v", domain.FormatDate(date), err)
		return "", false
	}
	return generation, true
}

func (uc *UseCase) fromCache(ctx context.Context, date time.Time) *domain.DaySchedule {
	if uc.cache == nil {
		return nil
	}

	schedule, ok, err := uc.cache.Get(ctx, date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache read failed for %s: %v", domain.FormatDate(date), err)
		return nil
	}
	if !ok {
		return nil
	}
	return schedule
}

func toResponse(schedule *domain.DaySchedule) *Response {
	resp := &Response{
		Date:          jalali.FormatJalali(schedule.Date),
		GregorianDate: jalali.FormatISO(schedule.Date),
		Weekday:       jalali.WeekdayName(schedule.Date),
		IsHoliday:     schedule.IsHoliday,
		WorkingHours: WorkingHours{
			StartTime: schedule.WorkingHours.Start,
			EndTime:   schedule.WorkingHours.End,
		},
		Slots: make([]Slot, 0, len(schedule.Slots)),
	}

	if schedule.IsHoliday {
		reason := schedule.HolidayReason
		resp.Reason = &reason
	}

	for _, s := range schedule.Slots {
		resp.Slots = append(resp.Slots, Slot{Time: s.Time, Available: s.Available, Disabled: s.Disabled})
	}

	return resp
}
