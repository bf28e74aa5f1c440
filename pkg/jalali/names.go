package jalali

import "time"

// Названия дней недели, неделя начинается с воскресенья (time.Sunday == 0)
var weekdayNames = [7]string{
	"یکشنبه",
	"دوشنبه",
	"سه‌شنبه",
	"چهارشنبه",
	"پنج‌شنبه",
	"جمعه",
	"شنبه",
}

var monthNames = [12]string{
	"فروردین",
	"اردیبهشت",
	"خرداد",
	"تیر",
	"مرداد",
	"شهریور",
	"مهر",
	"آبان",
	"آذر",
	"دی",
	"بهمن",
	"اسفند",
}

// WeekdayName возвращает персидское название дня недели
func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// MonthName возвращает персидское название месяца, для неверного номера пустую строку
func MonthName(jm int) string {
	if jm < 1 || jm > 12 {
		return ""
	}
	return monthNames[jm-1]
}
