package create_reservation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// validatedRequest провалидированные и приведенные к доменным типам данные запроса
type validatedRequest struct {
	customerName string
	phoneNumber  string
	date         time.Time
	time         types.TimeString
}

// validateRequest проверяет обязательные поля, формат телефона, даты и времени
func validateRequest(req *Request) (*validatedRequest, error) {
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

	t, err := types.NewTimeStringFromString(strings.TrimSpace(req.Time))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	if !t.IsWholeHour() {
		return nil, fmt.Errorf("%w: slots start on the hour", ErrInvalidTime)
	}

	return &validatedRequest{
		customerName: name,
		phoneNumber:  phone,
		date:         date,
		time:         t,
	}, nil
}

// validateNotInPast запрещает бронировать прошедшие дни и уже начавшиеся слоты сегодняшнего дня.
// now переводится в часовой пояс салона.
func validateNotInPast(date time.Time, t types.TimeString, now time.Time, loc *time.Location) error {
	local := now.In(loc)
	today := domain.DateOnly(local)

	if date.Before(today) {
		return ErrDateInPast
	}

	if date.Equal(today) && t.Minutes() <= local.Hour()*60+local.Minute() {
		return fmt.Errorf("%w: slot %s has already started", ErrDateInPast, t)
	}

	return nil
}
