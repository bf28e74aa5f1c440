package reset_working_hours

import "context"

type WorkingHoursService interface {
	Reset(ctx context.Context, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
