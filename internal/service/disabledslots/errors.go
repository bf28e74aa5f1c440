package disabledslots

import "errors"

var (
	// ErrDisabledSlotNotFound возвращается, когда отключенный слот не найден
	ErrDisabledSlotNotFound = errors.New("disabledslots: disabled slot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("disabledslots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("disabledslots: internal error")
)
