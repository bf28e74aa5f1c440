package workinghours

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/workinghours/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Service сервис управления журналом рабочих часов.
// Записи не редактируются: изменение добавляет новую активную запись
// и деактивирует прежние записи того же ключа (дата или значение по умолчанию).
type Service struct {
	repo      WorkingHoursRepository
	txManager TransactionManager
	cache     SlotCache
	notifier  Notifier
	logger    Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(repo WorkingHoursRepository, txManager TransactionManager, cache SlotCache, notifier Notifier, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		cache:     cache,
		notifier:  notifier,
		logger:    logger,
	}
}

// Get возвращает действующие часы.
// Без даты: запись по умолчанию. С датой: запись на дату, иначе по умолчанию, иначе 10:00-20:00.
func (s *Service) Get(ctx context.Context, date string) (*models.WorkingHoursResponse, error) {
	day, err := parseOptionalDate(date)
	if err != nil {
		s.logger.Warn("Get: invalid date %q: %v", date, err)
		return nil, err
	}

	var entries []*domain.WorkingHours
	if day == nil {
		entries, err = s.repo.History(ctx, nil)
	} else {
		entries, err = s.repo.ListActiveForDate(ctx, *day)
	}
	if err != nil {
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	var at time.Time
	if day != nil {
		at = *day
	}

	entry := domain.ResolveWorkingHours(entries, at)
	if entry == nil {
		return models.BuiltinWorkingHours(day), nil
	}
	return models.FromDomainWorkingHours(entry), nil
}

// ListActive возвращает все активные записи, новые сначала
func (s *Service) ListActive(ctx context.Context) ([]*models.WorkingHoursResponse, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWorkingHoursList(list), nil
}

// History возвращает все записи ключа, включая замененные, новые сначала
func (s *Service) History(ctx context.Context, date string) ([]*models.WorkingHoursResponse, error) {
	day, err := parseOptionalDate(date)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.History(ctx, day)
	if err != nil {
		s.logger.Error("History: repository error: %v", err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWorkingHoursList(list), nil
}

// Update добавляет новую запись для даты (или по умолчанию) и деактивирует прежние
func (s *Service) Update(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("Update: date=%v, start=%s, end=%s", req.Date, req.StartTime, req.EndTime)

	// 1. Валидация
	entry, err := validateUpdate(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 2. Деактивация и вставка в одной транзакции
	var created *domain.WorkingHours
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		superseded, err := s.repo.Deactivate(txCtx, entry.Date)
		if err != nil {
			return fmt.Errorf("%w: Update - deactivate: %w", ErrInternal, err)
		}

		created, err = s.repo.Append(txCtx, entry)
		if err != nil {
			return fmt.Errorf("%w: Update - append: %w", ErrInternal, err)
		}

		s.logger.Info("Update: superseded %d record(s)", superseded)
		return nil
	})
	if err != nil {
		s.logger.Error("Update: %v", err)
		return nil, err
	}

	s.changed(ctx, entry.Date)

	s.logger.Info("Update: successfully appended working hours id=%d", created.ID)
	return models.FromDomainWorkingHours(created), nil
}

// Reset деактивирует записи ключа: дата возвращается к часам по умолчанию,
// значение по умолчанию возвращается к 10:00-20:00
func (s *Service) Reset(ctx context.Context, date string) error {
	day, err := parseOptionalDate(date)
	if err != nil {
		return err
	}

	affected, err := s.repo.Deactivate(ctx, day)
	if err != nil {
		s.logger.Error("Reset: repository error: %v", err)
		return fmt.Errorf("%w: Reset - repository error: %v", ErrInternal, err)
	}
	if affected == 0 {
		s.logger.Warn("Reset: no active working hours for date=%q", date)
		return ErrWorkingHoursNotFound
	}

	s.changed(ctx, day)
	return nil
}

// changed сбрасывает кэш: запись на дату влияет на один день, запись по умолчанию на все
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

func validateUpdate(req *models.UpdateWorkingHoursRequest) (*domain.WorkingHours, error) {
	if strings.TrimSpace(req.StartTime) == "" || strings.TrimSpace(req.EndTime) == "" {
		return nil, fmt.Errorf("%w: start_time and end_time are required", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(strings.TrimSpace(req.StartTime))
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(strings.TrimSpace(req.EndTime))
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %v", ErrInvalidInput, err)
	}

	// Слоты часовые, поэтому окно задается целыми часами
	if !start.IsWholeHour() || !end.IsWholeHour() {
		return nil, fmt.Errorf("%w: working hours must start and end on the hour", ErrInvalidInput)
	}
	if !start.IsBefore(end) {
		return nil, ErrInvalidTimeRange
	}

	entry := &domain.WorkingHours{StartTime: start, EndTime: end, IsActive: true}
	if req.Date != nil {
		day, err := parseOptionalDate(*req.Date)
		if err != nil {
			return nil, err
		}
		entry.Date = day
	}

	return entry, nil
}

// parseOptionalDate пустая строка означает запись по умолчанию
func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	day, err := jalali.ParseToTime(s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}
	return &day, nil
}
