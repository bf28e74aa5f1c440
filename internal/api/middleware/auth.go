package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/auth"
)

// msgUnauthorized одно сообщение для любой причины отказа
const msgUnauthorized = "دسترسی غیرمجاز"

type sessionKey struct{}

// AdminAuth пропускает только запросы с действующим Bearer токеном
func AdminAuth(authenticator Authenticator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := authenticator.Authenticate(r.Context(), BearerToken(r))
			if err != nil {
				if errors.Is(err, auth.ErrUnauthorized) {
					logger.Warn("%s %s - Unauthorized admin request", r.Method, r.URL.Path)
					handlers.RespondUnauthorized(w, msgUnauthorized)
					return
				}
				logger.Error("%s %s - Failed to authenticate: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)))
		})
	}
}

// BearerToken токен из заголовка Authorization; пустая строка, если его нет
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// SessionFromContext сессия, установленная AdminAuth
func SessionFromContext(ctx context.Context) (*domain.AdminSession, bool) {
	s, ok := ctx.Value(sessionKey{}).(*domain.AdminSession)
	return s, ok
}
