package get_available_slots

import "github.com/m04kA/SMC-BarberBooking/pkg/types"

// Request модель запроса расписания дня
type Request struct {
	Date string // дата в формате "jYYYY/MM/DD" (префикс j необязателен)
}

// Options настройки расчета доступности
type Options struct {
	// ApplyGlobalDisabledSlots учитывать отключенные слоты без даты для каждого дня
	ApplyGlobalDisabledSlots bool
}

// Response модель ответа с расписанием дня
type Response struct {
	Date          string // "jYYYY/MM/DD"
	GregorianDate string // "YYYY-MM-DD"
	Weekday       string // название дня недели на фарси
	IsHoliday     bool
	Reason        *string // причина выходного, только для выходных
	WorkingHours  WorkingHours
	Slots         []Slot
}

// WorkingHours рабочее окно дня
type WorkingHours struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Slot модель часового слота
type Slot struct {
	Time      types.TimeString
	Available bool
	Disabled  bool
}
