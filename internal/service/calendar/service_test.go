package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func TestToday(t *testing.T) {
	svc := NewService(nil)
	svc.timeProvider = fixedTime{t: time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)}

	today := svc.Today()
	assert.Equal(t, "j1403/01/01", today.Date)
	assert.Equal(t, "2024-03-20", today.GregorianDate)
	assert.Equal(t, "چهارشنبه", today.Weekday)
	assert.Equal(t, 1403, today.Year)
	assert.Equal(t, 1, today.Month)
	assert.Equal(t, "فروردین", today.MonthName)
	assert.Equal(t, 31, today.DaysInMonth)
}

func TestToday_UsesLocation(t *testing.T) {
	tehran := time.FixedZone("IRST", 3*3600+1800)
	svc := NewService(tehran)
	// 22:00 UTC 19 марта = 01:30 20 марта по Тегерану
	svc.timeProvider = fixedTime{t: time.Date(2024, 3, 19, 22, 0, 0, 0, time.UTC)}

	assert.Equal(t, "j1403/01/01", svc.Today().Date)
}
