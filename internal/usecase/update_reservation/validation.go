package update_reservation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// validateRequest проверяет поля и возвращает бронирование с новыми значениями
func validateRequest(req *Request) (*domain.Reservation, error) {
	if req.ID <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	phone := strings.TrimSpace(req.PhoneNumber)

	if name == "" || phone == "" || strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return nil, fmt.Errorf("%w: customer name is longer than %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if !domain.IsValidPhone(phone) {
		return nil, ErrInvalidPhone
	}

	date, err := jalali.ParseToTime(req.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// Рабочие часы администратор может обойти, но слот остается часовым
	t, err := types.NewTimeStringFromString(strings.TrimSpace(req.Time))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	if !t.IsWholeHour() {
		return nil, fmt.Errorf("%w: slots start on the hour", ErrInvalidTime)
	}

	return &domain.Reservation{
		ID:           req.ID,
		CustomerName: name,
		PhoneNumber:  phone,
		Date:         date,
		Time:         t,
	}, nil
}
