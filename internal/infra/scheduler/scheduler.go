// Package scheduler запускает фоновые задачи сервиса по расписанию cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const jobTimeout = 30 * time.Second

// SessionPurger удаляет истёкшие сессии администратора
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Notifier рассылает событие клиентам (может быть nil)
type Notifier interface {
	Publish(event domain.ScheduleEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config расписания задач в формате cron; пустая строка отключает задачу
type Config struct {
	SessionCleanup string
	DayRollover    string
}

// Scheduler фоновые задачи
type Scheduler struct {
	cron     *cron.Cron
	cfg      Config
	sessions SessionPurger
	notifier Notifier
	logger   Logger
}

// New создает планировщик; расписания вычисляются в зоне location
func New(cfg Config, location *time.Location, sessions SessionPurger, notifier Notifier, logger Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		cfg:      cfg,
		sessions: sessions,
		notifier: notifier,
		logger:   logger,
	}
}

// Start регистрирует задачи и запускает планировщик
func (s *Scheduler) Start() error {
	if s.cfg.SessionCleanup != "" {
		if _, err := s.cron.AddFunc(s.cfg.SessionCleanup, s.purgeSessions); err != nil {
			return fmt.Errorf("scheduler: invalid session_cleanup spec %q: %w", s.cfg.SessionCleanup, err)
		}
	}

	if s.cfg.DayRollover != "" && s.notifier != nil {
		if _, err := s.cron.AddFunc(s.cfg.DayRollover, s.dayRollover); err != nil {
			return fmt.Errorf("scheduler: invalid day_rollover spec %q: %w", s.cfg.DayRollover, err)
		}
	}

	s.cron.Start()
	s.logger.Info("Scheduler started: jobs=%d", len(s.cron.Entries()))
	return nil
}

// Stop ждет завершения выполняющихся задач
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) purgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.sessions.PurgeExpired(ctx); err != nil {
		s.logger.Error("Scheduler - session cleanup failed: %v", err)
	}
}

// dayRollover после полуночи "сегодня" сменилось, клиентам нужно перечитать расписание
func (s *Scheduler) dayRollover() {
	s.notifier.Publish(domain.ScheduleEvent{Type: domain.EventScheduleChanged})
}
