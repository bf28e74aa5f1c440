package calendar

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/calendar/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
)

// Service календарь салона
type Service struct {
	location     *time.Location
	timeProvider TimeProvider
}

// NewService создает сервис; location задает часовой пояс, в котором определяется "сегодня"
func NewService(location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{location: location, timeProvider: &RealTimeProvider{}}
}

// Today возвращает сегодняшнюю дату в календаре солнечной хиджры
func (s *Service) Today() *models.TodayResponse {
	today := domain.DateOnly(s.timeProvider.Now().In(s.location))
	d := jalali.FromTime(today)

	return &models.TodayResponse{
		Date:          d.String(),
		GregorianDate: jalali.FormatISO(today),
		Weekday:       jalali.WeekdayName(today),
		Year:          d.Year,
		Month:         d.Month,
		MonthName:     jalali.MonthName(d.Month),
		Day:           d.Day,
		DaysInMonth:   jalali.DaysInMonth(d.Year, d.Month),
	}
}
