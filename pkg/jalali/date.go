package jalali

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate возвращается при некорректной строке или дате вне календаря
var ErrInvalidDate = errors.New("jalali: invalid date")

const (
	// ISOLayout формат хранения григорианских дат
	ISOLayout = "2006-01-02"

	// Prefix маркер, отличающий иранскую дату от обычной числовой строки
	Prefix = "j"

	// MinParseYear и MaxParseYear границы года для Parse (григорианские 1721-2222).
	// Григорианская строка вроде "2024-03-20" не должна читаться как иранский 2024 год.
	MinParseYear = 1100
	MaxParseYear = 1600
)

// Date дата иранского календаря
type Date struct {
	Year  int
	Month int
	Day   int
}

// FromTime возвращает иранскую дату для календарного дня t
func FromTime(t time.Time) Date {
	jy, jm, jd := GregorianToJalali(t.Year(), int(t.Month()), t.Day())
	return Date{Year: jy, Month: jm, Day: jd}
}

// Time возвращает полночь соответствующего григорианского дня в loc
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	gy, gm, gd := JalaliToGregorian(d.Year, d.Month, d.Day)
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, loc)
}

// Valid проверяет диапазоны месяца и дня
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= DaysInMonth(d.Year, d.Month)
}

// String форматирует дату как "jYYYY/MM/DD"
func (d Date) String() string {
	return fmt.Sprintf("%s%04d/%02d/%02d", Prefix, d.Year, d.Month, d.Day)
}

// Parse разбирает иранскую дату.
// Допустимы "jYYYY/MM/DD", "YYYY/MM/DD" и "YYYY-MM-DD"; год в пределах MinParseYear..MaxParseYear.
func Parse(s string) (Date, error) {
	value := strings.TrimPrefix(strings.TrimSpace(s), Prefix)
	if value == "" {
		return Date{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	sep := "/"
	if !strings.Contains(value, sep) {
		sep = "-"
	}

	parts := strings.Split(value, sep)
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q must have 3 segments", ErrInvalidDate, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q has non-numeric segment %q", ErrInvalidDate, s, p)
		}
		nums[i] = n
	}

	if nums[0] < MinParseYear || nums[0] > MaxParseYear {
		return Date{}, fmt.Errorf("%w: year %d of %q is outside %d-%d", ErrInvalidDate, nums[0], s, MinParseYear, MaxParseYear)
	}

	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %q is out of calendar range", ErrInvalidDate, s)
	}

	return d, nil
}

// ParseToTime разбирает иранскую дату и сразу переводит её в григорианскую полночь
func ParseToTime(s string, loc *time.Location) (time.Time, error) {
	d, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time(loc), nil
}

// FormatISO форматирует григорианскую дату как "YYYY-MM-DD"
func FormatISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// FormatJalali форматирует григорианскую дату в иранском календаре как "jYYYY/MM/DD"
func FormatJalali(t time.Time) string {
	return FromTime(t).String()
}
