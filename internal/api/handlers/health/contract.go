package health

import "context"

// Pinger проверка доступности зависимости (*sql.DB, кэш)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}
