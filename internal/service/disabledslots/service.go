package disabledslots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	disabledSlotRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/disabledslot"
	"github.com/m04kA/SMC-BarberBooking/internal/service/disabledslots/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Service сервис управления отключенными слотами
type Service struct {
	repo          DisabledSlotRepository
	cache         SlotCache
	notifier      Notifier
	includeGlobal bool
	logger        Logger
}

// NewService создает новый экземпляр сервиса.
// includeGlobal должен совпадать с настройкой расчета доступности:
// список на дату показывает ровно те слоты, которые влияют на эту дату.
func NewService(repo DisabledSlotRepository, cache SlotCache, notifier Notifier, includeGlobal bool, logger Logger) *Service {
	return &Service{
		repo:          repo,
		cache:         cache,
		notifier:      notifier,
		includeGlobal: includeGlobal,
		logger:        logger,
	}
}

// List возвращает активные отключенные слоты; с датой только влияющие на эту дату
func (s *Service) List(ctx context.Context, date string) ([]*models.DisabledSlotResponse, error) {
	var (
		list []*domain.DisabledSlot
		err  error
	)

	if strings.TrimSpace(date) == "" {
		list, err = s.repo.List(ctx)
	} else {
		day, parseErr := jalali.ParseToTime(date, time.UTC)
		if parseErr != nil {
			s.logger.Warn("List: invalid date %q: %v", date, parseErr)
			return nil, fmt.Errorf("%w: date: %v", ErrInvalidInput, parseErr)
		}
		list, err = s.repo.ListActiveForDate(ctx, day, s.includeGlobal)
	}
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	out := make([]*models.DisabledSlotResponse, 0, len(list))
	for _, slot := range list {
		out = append(out, models.FromDomainDisabledSlot(slot))
	}
	return out, nil
}

// Create отключает слот на дату или для всех дат
func (s *Service) Create(ctx context.Context, req *models.CreateDisabledSlotRequest) (*models.DisabledSlotResponse, error) {
	s.logger.Info("Create: date=%v, time=%s", req.Date, req.Time)

	slot, err := validateCreate(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.changed(ctx, created.Date)

	s.logger.Info("Create: successfully disabled slot id=%d", created.ID)
	return models.FromDomainDisabledSlot(created), nil
}

// Delete снова открывает слот
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: disabled slot id=%d", id)

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, disabledSlotRepo.ErrDisabledSlotNotFound) {
			s.logger.Warn("Delete: disabled slot id=%d not found", id)
			return ErrDisabledSlotNotFound
		}
		s.logger.Error("Delete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.changed(ctx, deleted.Date)
	return nil
}

func (s *Service) changed(ctx context.Context, date *time.Time) {
	if s.cache != nil {
		var err error
		if date != nil {
			err = s.cache.Invalidate(ctx, *date)
		} else {
			err = s.cache.InvalidateAll(ctx)
		}
		if err != nil {
			s.logger.Warn("failed to invalidate cache: %v", err)
		}
	}

	if s.notifier != nil {
		s.notifier.Publish(domain.ScheduleEvent{Type: domain.EventScheduleChanged, Date: date})
	}
}

func validateCreate(req *models.CreateDisabledSlotRequest) (*domain.DisabledSlot, error) {
	reason := strings.TrimSpace(req.Reason)
	if strings.TrimSpace(req.Time) == "" || reason == "" {
		return nil, fmt.Errorf("%w: time and reason are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	t, err := types.NewTimeStringFromString(strings.TrimSpace(req.Time))
	if err != nil {
		return nil, fmt.Errorf("%w: time: %v", ErrInvalidInput, err)
	}
	if !t.IsWholeHour() {
		return nil, fmt.Errorf("%w: slots start on the hour", ErrInvalidInput)
	}

	slot := &domain.DisabledSlot{Time: t, Reason: reason, IsActive: true}

	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		day, err := jalali.ParseToTime(*req.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
		}
		slot.Date = &day
	}

	return slot, nil
}
