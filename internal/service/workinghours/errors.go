package workinghours

import "errors"

var (
	// ErrWorkingHoursNotFound возвращается, когда для ключа нет активной записи
	ErrWorkingHoursNotFound = errors.New("workinghours: working hours not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("workinghours: invalid input data")

	// ErrInvalidTimeRange возвращается, когда начало не раньше конца
	ErrInvalidTimeRange = errors.New("workinghours: start time must be before end time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("workinghours: internal error")
)
