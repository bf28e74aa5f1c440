package middleware

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Authenticator проверяет токен сессии администратора
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.AdminSession, error)
}
