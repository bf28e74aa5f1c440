package reservations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-BarberBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Service сервис административной работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	exporter        Exporter
	txManager       TransactionManager
	cache           SlotCache
	notifier        Notifier
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	exporter Exporter,
	txManager TransactionManager,
	cache SlotCache,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}

	return &Service{
		reservationRepo: reservationRepo,
		exporter:        exporter,
		txManager:       txManager,
		cache:           cache,
		notifier:        notifier,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List возвращает бронирования, отсортированные по дате (новые сначала) и времени.
// Поддерживает поиск по имени или телефону и фильтры по дате и времени.
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) ([]*models.ReservationResponse, error) {
	s.logger.Info("List: query=%q, date=%q, time=%q", req.Query, req.Date, req.Time)

	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

// Delete удаляет бронирование и освобождает слот
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting reservation id=%d", id)

	var deleted *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Delete - get reservation: %w", ErrInternal, err)
		}

		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Delete - delete reservation: %w", ErrInternal, err)
		}

		deleted = res
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
		} else {
			s.logger.Error("Delete: failed to delete reservation id=%d: %v", id, err)
		}
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, deleted.Date); err != nil {
			s.logger.Warn("Delete: failed to invalidate cache for %s: %v", domain.FormatDate(deleted.Date), err)
		}
	}
	if s.notifier != nil {
		s.notifier.Publish(domain.ScheduleEvent{
			Type: domain.EventReservationDeleted,
			Date: ptr.Ptr(deleted.Date),
			Time: deleted.Time.String(),
		})
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", id)
	return nil
}

// Export записывает отфильтрованные бронирования в w в формате XLSX
func (s *Service) Export(ctx context.Context, req *models.ListReservationsRequest, w io.Writer) error {
	s.logger.Info("Export: query=%q, date=%q, time=%q", req.Query, req.Date, req.Time)

	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("Export: invalid filter: %v", err)
		return err
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Export: repository error: %v", err)
		return fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	if err := s.exporter.WriteReservations(w, list); err != nil {
		s.logger.Error("Export: failed to write %d reservations: %v", len(list), err)
		return fmt.Errorf("%w: Export - write file: %v", ErrInternal, err)
	}

	s.logger.Info("Export: exported %d reservations", len(list))
	return nil
}

// Statistics считает сводку: всего, сегодня, в текущем месяце солнечной хиджры,
// самое популярное время и среднее число бронирований на день с бронированиями
func (s *Service) Statistics(ctx context.Context) (*models.StatisticsResponse, error) {
	today := domain.DateOnly(s.timeProvider.Now().In(s.location))
	month := jalali.FromTime(today)
	monthStart := jalali.Date{Year: month.Year, Month: month.Month, Day: 1}.Time(time.UTC)
	monthEnd := jalali.Date{Year: month.Year, Month: month.Month, Day: jalali.DaysInMonth(month.Year, month.Month)}.Time(time.UTC)

	s.logger.Info("Statistics: today=%s, month=%s..%s", domain.FormatDate(today), domain.FormatDate(monthStart), domain.FormatDate(monthEnd))

	var (
		stats domain.ReservationStats
		err   error
	)

	if stats.Total, err = s.reservationRepo.Count(ctx, nil, nil); err != nil {
		return nil, s.statsError("count total", err)
	}
	if stats.Today, err = s.reservationRepo.Count(ctx, &today, &today); err != nil {
		return nil, s.statsError("count today", err)
	}
	if stats.ThisMonth, err = s.reservationRepo.Count(ctx, &monthStart, &monthEnd); err != nil {
		return nil, s.statsError("count month", err)
	}

	var popular *types.TimeString
	if popular, stats.MostPopularCount, err = s.reservationRepo.MostPopularTime(ctx); err != nil {
		return nil, s.statsError("most popular time", err)
	}
	stats.MostPopularTime = popular

	if stats.BookedDays, err = s.reservationRepo.CountBookedDays(ctx); err != nil {
		return nil, s.statsError("booked days", err)
	}
	if stats.BookedDays > 0 {
		stats.AveragePerDay = math.Round(float64(stats.Total)/float64(stats.BookedDays)*100) / 100
	}

	return models.FromDomainStatistics(&stats, jalali.MonthName(month.Month)), nil
}

func (s *Service) statsError(step string, err error) error {
	s.logger.Error("Statistics: %s: %v", step, err)
	return fmt.Errorf("%w: Statistics - %s: %v", ErrInternal, step, err)
}

// toDomainFilter переводит параметры запроса в доменный фильтр
func toDomainFilter(req *models.ListReservationsRequest) (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{Query: strings.TrimSpace(req.Query)}

	if date := strings.TrimSpace(req.Date); date != "" {
		parsed, err := jalali.ParseToTime(date, time.UTC)
		if err != nil {
			return filter, fmt.Errorf("%w: date: %v", ErrInvalidFilter, err)
		}
		filter.Date = &parsed
	}

	if t := strings.TrimSpace(req.Time); t != "" {
		parsed, err := types.NewTimeStringFromString(t)
		if err != nil {
			return filter, fmt.Errorf("%w: time: %v", ErrInvalidFilter, err)
		}
		filter.Time = &parsed
	}

	return filter, nil
}
