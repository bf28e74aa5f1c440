// Package jalali конвертирует даты между григорианским и иранским (солнечным хиджры) календарями.
// Используется только целочисленная арифметика, внешние календарные библиотеки не нужны.
package jalali

// Накопленное количество дней до начала месяца в невисокосном григорианском году
var gregorianDaysBeforeMonth = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

const (
	// gregorianEpoch смещение дневного номера для прямого преобразования
	gregorianEpoch = 355666
	// jalaliEpoch смещение дневного номера для обратного преобразования
	jalaliEpoch = -355668

	// jalaliCycleDays длина 33-летнего цикла иранского календаря в днях
	jalaliCycleDays = 12053
	// fourYearDays длина четырёхлетнего подцикла
	fourYearDays = 1461

	// firstHalfDays дни первых шести 31-дневных месяцев
	firstHalfDays = 186

	gregorian400Days = 146097
	gregorian100Days = 36524
)

// GregorianToJalali переводит григорианскую дату в иранскую
func GregorianToJalali(gy, gm, gd int) (jy, jm, jd int) {
	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}

	days := gregorianEpoch + 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 +
		gd + gregorianDaysBeforeMonth[gm-1]

	jy = -1595 + 33*(days/jalaliCycleDays)
	days %= jalaliCycleDays

	jy += 4 * (days / fourYearDays)
	days %= fourYearDays

	if days > 365 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}

	if days < firstHalfDays {
		jm = 1 + days/31
		jd = 1 + days%31
	} else {
		jm = 7 + (days-firstHalfDays)/30
		jd = 1 + (days-firstHalfDays)%30
	}

	return jy, jm, jd
}

// JalaliToGregorian переводит иранскую дату в григорианскую
func JalaliToGregorian(jy, jm, jd int) (gy, gm, gd int) {
	days := dayNumber(jy, jm, jd)

	gy = 400 * (days / gregorian400Days)
	days %= gregorian400Days

	if days > gregorian100Days {
		days--
		gy += 100 * (days / gregorian100Days)
		days %= gregorian100Days
		if days >= 365 {
			days++
		}
	}

	gy += 4 * (days / fourYearDays)
	days %= fourYearDays

	if days > 365 {
		gy += (days - 1) / 365
		days = (days - 1) % 365
	}

	// Раскладываем день года по месяцам с учётом 28/29 февраля
	gd = days + 1
	gm = 1
	for _, length := range gregorianMonthLengths(gy) {
		if gd <= length {
			break
		}
		gd -= length
		gm++
	}

	return gy, gm, gd
}

// dayNumber порядковый номер дня от эпохи для иранской даты
func dayNumber(jy, jm, jd int) int {
	jy += 1595

	days := jalaliEpoch + 365*jy + (jy/33)*8 + ((jy%33)+3)/4 + jd
	if jm < 7 {
		days += (jm - 1) * 31
	} else {
		days += (jm-7)*30 + firstHalfDays
	}

	return days
}

// IsLeapYear сообщает, является ли иранский год високосным (в эсфанде 30 дней)
func IsLeapYear(jy int) bool {
	return dayNumber(jy+1, 1, 1)-dayNumber(jy, 12, 1) == 30
}

// DaysInMonth количество дней в месяце иранского года
func DaysInMonth(jy, jm int) int {
	switch {
	case jm >= 1 && jm <= 6:
		return 31
	case jm >= 7 && jm <= 11:
		return 30
	case jm == 12:
		if IsLeapYear(jy) {
			return 30
		}
		return 29
	default:
		return 0
	}
}

func isGregorianLeap(gy int) bool {
	return (gy%4 == 0 && gy%100 != 0) || gy%400 == 0
}

func gregorianMonthLengths(gy int) [12]int {
	february := 28
	if isGregorianLeap(gy) {
		february = 29
	}
	return [12]int{31, february, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
}
