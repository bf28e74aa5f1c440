package holidays

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда выходной не найден
	ErrHolidayNotFound = errors.New("holidays: holiday not found")

	// ErrHolidayExists возвращается, когда дата уже отмечена как выходной
	ErrHolidayExists = errors.New("holidays: holiday already exists for this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("holidays: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holidays: internal error")
)
