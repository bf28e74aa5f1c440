package update_reservation

import "errors"

var (
	// ErrInvalidInput возвращается, когда не заполнены обязательные поля
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInvalidPhone возвращается, когда номер не соответствует формату 09XXXXXXXXX
	ErrInvalidPhone = errors.New("update_reservation: invalid phone number")

	// ErrInvalidDate возвращается, когда дату не удалось разобрать
	ErrInvalidDate = errors.New("update_reservation: invalid date")

	// ErrInvalidTime возвращается при некорректном времени
	ErrInvalidTime = errors.New("update_reservation: invalid time")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrSlotTaken возвращается, когда новый слот занят другим бронированием
	ErrSlotTaken = errors.New("update_reservation: slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
