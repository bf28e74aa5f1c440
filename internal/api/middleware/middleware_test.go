package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/auth"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type fakeAuthenticator struct {
	token string
	err   error
}

func (a fakeAuthenticator) Authenticate(ctx context.Context, token string) (*domain.AdminSession, error) {
	if a.err != nil {
		return nil, a.err
	}
	if token != a.token {
		return nil, auth.ErrUnauthorized
	}
	return &domain.AdminSession{Username: "admin"}, nil
}

func TestAdminAuth(t *testing.T) {
	var seen *domain.AdminSession
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionFromContext(r.Context())
	})
	h := AdminAuth(fakeAuthenticator{token: "good"}, logger.Nop())(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
		{"scheme case insensitive", "bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, "/admin/reservations", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, "admin", seen.Username)
			} else {
				assert.Nil(t, seen)
				assert.JSONEq(t, `{"error":"`+msgUnauthorized+`"}`, w.Body.String())
			}
		})
	}
}

func TestAdminAuth_InternalError(t *testing.T) {
	h := AdminAuth(fakeAuthenticator{err: errors.New("db down")}, logger.Nop())(ok)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer x")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(60, 2)
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	h := l.Middleware(logger.Nop())(ok)
	send := func(addr string) int {
		r := httptest.NewRequest(http.MethodPost, "/reservations", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000"))

	// 60 в минуту = один токен в секунду
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1003"))
}

func TestRateLimiter_EvictsIdle(t *testing.T) {
	l := NewRateLimiter(60, 1)
	now := time.Now()
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	now = now.Add(limiterIdleTTL + time.Second)
	assert.True(t, l.Allow("b"))
	assert.Len(t, l.limiters, 1)
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, got, 36)
	assert.Equal(t, got, w.Header().Get(RequestIDHeader))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "client-id")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "client-id", got)
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://barber.example"})(ok)

	r := httptest.NewRequest(http.MethodOptions, "/api/v1/reservations", nil)
	r.Header.Set("Origin", "https://barber.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://barber.example", w.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodGet, "/api/v1/today", nil)
	r.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegisterer("barber", prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m, "barber"))
	router.Handle("/admin/reservations/{id}", ok).Methods(http.MethodDelete)

	for _, id := range []string{"1", "2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/admin/reservations/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("barber", http.MethodDelete, "/admin/reservations/{id}", "200")))
}
