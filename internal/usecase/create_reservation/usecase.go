package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

// UseCase use case для создания бронирования клиентом
type UseCase struct {
	resolver        AvailabilityResolver
	reservationRepo ReservationRepository
	txManager       TransactionManager
	cache           SlotCache
	notifier        Notifier
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// cache и notifier необязательны (nil отключает их).
func NewUseCase(
	resolver AvailabilityResolver,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	cache SlotCache,
	notifier Notifier,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		resolver:        resolver,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		cache:           cache,
		notifier:        notifier,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в сериализуемой транзакции;
// уникальный индекс (date, time) отсекает гонку, если она все же случилась.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: phone=%s, date=%s, time=%s", req.PhoneNumber, req.Date, req.Time)

	// 1. Валидация входных данных
	input, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.countResult(resultRejected)
		return nil, err
	}

	// 2. Проверяем, что слот еще не прошел
	if err := validateNotInPast(input.date, input.time, uc.timeProvider.Now(), uc.location); err != nil {
		uc.logger.Warn("CreateReservation: %s %s is in the past", domain.FormatDate(input.date), input.time)
		uc.countResult(resultRejected)
		return nil, err
	}

	var result *domain.Reservation

	// 3. Проверка доступности и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Рассчитываем расписание дня
		schedule, err := uc.resolver.ResolveDay(txCtx, input.date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to resolve day %s: %v", domain.FormatDate(input.date), err)
			return fmt.Errorf("%w: failed to resolve day: %w", ErrInternal, err)
		}

		// 3.2. Проверяем слот
		if err := checkSlot(schedule, input); err != nil {
			return err
		}

		// 3.3. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			CustomerName: input.customerName,
			PhoneNumber:  input.phoneNumber,
			Date:         input.date,
			Time:         input.time,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationExists) {
				return ErrSlotTaken
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrSlotDisabled):
			uc.logger.Warn("CreateReservation: slot %s %s unavailable: %v", domain.FormatDate(input.date), input.time, err)
			uc.countResult(resultConflict)
		case errors.Is(err, ErrInternal):
			uc.countResult(resultError)
		default:
			uc.logger.Warn("CreateReservation: rejected %s %s: %v", domain.FormatDate(input.date), input.time, err)
			uc.countResult(resultRejected)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)
	uc.countResult(resultCreated)

	// 4. Сбрасываем кэш и уведомляем клиентов
	uc.afterCreate(ctx, result)

	return &Response{
		ID:            result.ID,
		CustomerName:  result.CustomerName,
		PhoneNumber:   result.PhoneNumber,
		Date:          jalali.FormatJalali(result.Date),
		GregorianDate: jalali.FormatISO(result.Date),
		Time:          result.Time,
		CreatedAt:     result.CreatedAt,
	}, nil
}

// checkSlot проверяет, что слот существует в расписании и свободен
func checkSlot(schedule *domain.DaySchedule, input *validatedRequest) error {
	if schedule.IsHoliday {
		return fmt.Errorf("%w: %s", ErrHoliday, schedule.HolidayReason)
	}

	slot, ok := schedule.FindSlot(input.time)
	if !ok {
		return fmt.Errorf("%w: %s-%s", ErrOutsideWorkingHours, schedule.WorkingHours.Start, schedule.WorkingHours.End)
	}

	if slot.Disabled {
		return ErrSlotDisabled
	}

	if !slot.Available {
		return ErrSlotTaken
	}

	return nil
}

func (uc *UseCase) afterCreate(ctx context.Context, res *domain.Reservation) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, res.Date); err != nil {
			uc.logger.Warn("CreateReservation: failed to invalidate cache for %s: %v", domain.FormatDate(res.Date), err)
		}
	}

	if uc.notifier != nil {
		uc.notifier.Publish(domain.ScheduleEvent{
			Type: domain.EventReservationCreated,
			Date: ptr.Ptr(res.Date),
			Time: res.Time.String(),
		})
	}
}

func (uc *UseCase) countResult(result string) {
	if uc.metrics != nil {
		uc.metrics.ReservationResult(result)
	}
}
