package update_reservation

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

// UseCase use case изменения бронирования администратором
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	cache           SlotCache
	notifier        Notifier
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	cache SlotCache,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		cache:           cache,
		notifier:        notifier,
		logger:          logger,
	}
}

// Execute заменяет имя, телефон, дату и время бронирования.
// Проверка занятости слота исключает само изменяемое бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: id=%d, date=%s, time=%s", req.ID, req.Date, req.Time)

	// 1. Валидация входных данных
	updated, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	var previousDate time.Time

	// 2. Проверка и обновление в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем текущее бронирование
		current, err := uc.reservationRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}
		previousDate = current.Date
		updated.CreatedAt = current.CreatedAt

		// 2.2. Слот не должен быть занят другим бронированием
		taken, err := uc.reservationRepo.ExistsAt(txCtx, updated.Date, updated.Time, updated.ID)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}
		if taken {
			return ErrSlotTaken
		}

		// 2.3. Сохраняем изменения
		if err := uc.reservationRepo.Update(txCtx, updated); err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrReservationNotFound):
				return ErrReservationNotFound
			case errors.Is(err, reservationRepo.ErrReservationExists):
				return ErrSlotTaken
			}
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrInternal) {
			uc.logger.Warn("UpdateReservation: id=%d rejected: %v", req.ID, err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", updated.ID)

	// 3. Сбрасываем кэш старой и новой даты
	uc.invalidate(ctx, previousDate)
	if !updated.Date.Equal(previousDate) {
		uc.invalidate(ctx, updated.Date)
	}

	if uc.notifier != nil {
		uc.notifier.Publish(domain.ScheduleEvent{
			Type: domain.EventReservationUpdated,
			Date: ptr.Ptr(updated.Date),
			Time: updated.Time.String(),
		})
	}

	return &Response{
		ID:            updated.ID,
		CustomerName:  updated.CustomerName,
		PhoneNumber:   updated.PhoneNumber,
		Date:          jalali.FormatJalali(updated.Date),
		GregorianDate: jalali.FormatISO(updated.Date),
		Time:          updated.Time,
		CreatedAt:     updated.CreatedAt,
		UpdatedAt:     updated.UpdatedAt,
	}, nil
}

func (uc *UseCase) invalidate(ctx context.Context, date time.Time) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, date); err != nil {
		uc.logger.Warn("UpdateReservation: failed to invalidate cache for %s: %v", domain.FormatDate(date), err)
	}
}
