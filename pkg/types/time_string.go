package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeLayout формат времени суток
const TimeLayout = "15:04"

var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате "HH:MM"
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeLayout))
}

// NewTimeStringFromString парсит и нормализует строку "H:MM" / "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		// допускаем часы без ведущего нуля: "9:00"
		t, err = time.Parse("15:4", s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}
	return NewTimeString(t), nil
}

// HourSlot время начала часового слота "HH:00"
func HourSlot(hour int) TimeString {
	return TimeString(fmt.Sprintf("%02d:00", hour))
}

func (ts TimeString) String() string {
	return string(ts)
}

func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет формат "HH:MM"
func (ts TimeString) Validate() error {
	if len(ts) != len(TimeLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	if _, err := time.Parse(TimeLayout, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// Hour возвращает час (0-23), для некорректной строки -1
func (ts TimeString) Hour() int {
	t, err := time.Parse(TimeLayout, string(ts))
	if err != nil {
		return -1
	}
	return t.Hour()
}

// Minutes минуты от начала суток, для некорректной строки -1
func (ts TimeString) Minutes() int {
	t, err := time.Parse(TimeLayout, string(ts))
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// IsWholeHour true для "HH:00"
func (ts TimeString) IsWholeHour() bool {
	m := ts.Minutes()
	return m >= 0 && m%60 == 0
}

func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}
