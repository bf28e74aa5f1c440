package holidays

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	holidayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-BarberBooking/internal/service/holidays/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

// Service сервис управления выходными днями
type Service struct {
	holidayRepo HolidayRepository
	cache       SlotCache
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса выходных
func NewService(holidayRepo HolidayRepository, cache SlotCache, notifier Notifier, logger Logger) *Service {
	return &Service{
		holidayRepo: holidayRepo,
		cache:       cache,
		notifier:    notifier,
		logger:      logger,
	}
}

// List возвращает все выходные по возрастанию даты
func (s *Service) List(ctx context.Context) ([]*models.HolidayResponse, error) {
	list, err := s.holidayRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	out := make([]*models.HolidayResponse, 0, len(list))
	for _, h := range list {
		out = append(out, models.FromDomainHoliday(h))
	}
	return out, nil
}

// Create отмечает дату как выходной. Повторная отметка той же даты запрещена.
func (s *Service) Create(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("Create: date=%s", req.Date)

	if strings.TrimSpace(req.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := jalali.ParseToTime(req.Date, time.UTC)
	if err != nil {
		s.logger.Warn("Create: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var reason *string
	if req.Reason != nil {
		if r := strings.TrimSpace(*req.Reason); r != "" {
			if utf8.RuneCountInString(r) > domain.MaxReasonLength {
				return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
			}
			reason = &r
		}
	}

	created, err := s.holidayRepo.Create(ctx, &domain.Holiday{Date: date, Reason: reason})
	if err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayExists) {
			s.logger.Warn("Create: holiday for %s already exists", domain.FormatDate(date))
			return nil, ErrHolidayExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.changed(ctx, date)

	s.logger.Info("Create: successfully created holiday id=%d for %s", created.ID, domain.FormatDate(date))
	return models.FromDomainHoliday(created), nil
}

// Delete удаляет выходной
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: holiday id=%d", id)

	date, err := s.holidayRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("Delete: holiday id=%d not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("Delete: repository error for holiday id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.changed(ctx, date)
	return nil
}

// changed сбрасывает кэш даты и уведомляет клиентов
func (s *Service) changed(ctx context.Context, date time.Time) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, date); err != nil {
			s.logger.Warn("failed to invalidate cache for %s: %v", domain.FormatDate(date), err)
		}
	}
	if s.notifier != nil {
		s.notifier.Publish(domain.ScheduleEvent{Type: domain.EventScheduleChanged, Date: ptr.Ptr(date)})
	}
}
