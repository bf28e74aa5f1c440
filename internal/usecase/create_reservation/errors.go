package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается, когда не заполнены обязательные поля
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidPhone возвращается, когда номер не соответствует формату 09XXXXXXXXX
	ErrInvalidPhone = errors.New("create_reservation: invalid phone number")

	// ErrInvalidDate возвращается, когда дату не удалось разобрать
	ErrInvalidDate = errors.New("create_reservation: invalid date")

	// ErrInvalidTime возвращается, когда время не является началом часового слота
	ErrInvalidTime = errors.New("create_reservation: invalid time")

	// ErrDateInPast возвращается при попытке забронировать прошедший слот
	ErrDateInPast = errors.New("create_reservation: date is in the past")

	// ErrHoliday возвращается, когда дата отмечена как выходной
	ErrHoliday = errors.New("create_reservation: date is a holiday")

	// ErrOutsideWorkingHours возвращается, когда слот вне рабочего окна дня
	ErrOutsideWorkingHours = errors.New("create_reservation: time is outside working hours")

	// ErrSlotDisabled возвращается, когда слот отключен администратором
	ErrSlotDisabled = errors.New("create_reservation: slot is disabled")

	// ErrSlotTaken возвращается, когда слот уже забронирован
	ErrSlotTaken = errors.New("create_reservation: slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
