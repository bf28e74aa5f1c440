package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном имени или пароле.
	// Причина отказа не раскрывается.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUnauthorized возвращается для отсутствующего, неизвестного или истекшего токена
	ErrUnauthorized = errors.New("auth: unauthorized")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
