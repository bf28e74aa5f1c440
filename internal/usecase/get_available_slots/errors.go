package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается, когда дату не удалось разобрать как дату солнечной хиджры
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
