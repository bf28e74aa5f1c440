package models

// TodayResponse сегодняшняя дата в часовом поясе салона
type TodayResponse struct {
	Date          string `json:"date"`           // "jYYYY/MM/DD"
	GregorianDate string `json:"gregorian_date"` // "YYYY-MM-DD"
	Weekday       string `json:"weekday"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	MonthName     string `json:"month_name"`
	Day           int    `json:"day"`
	DaysInMonth   int    `json:"days_in_month"`
}
