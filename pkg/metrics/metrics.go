package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса.
// Методы-счётчики безопасно вызывать на nil (метрики выключены).
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	ReservationsTotal *prometheus.CounterVec
	SlotCacheTotal    *prometheus.CounterVec
	RealtimeClients   *prometheus.GaugeVec
}

// New регистрирует метрики в глобальном registry prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном registry
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		ReservationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_total",
			Help: "Reservation attempts by result",
		}, []string{"service", "result"}),

		SlotCacheTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_cache_requests_total",
			Help: "Availability cache lookups by result",
		}, []string{"service", "result"}),

		RealtimeClients: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "realtime_clients",
			Help: "Connected websocket clients",
		}, []string{"service"}),
	}
}

// ServiceName имя сервиса, которым помечаются все метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ReservationResult учитывает попытку бронирования: created, conflict, rejected
func (m *Metrics) ReservationResult(result string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(m.serviceName, result).Inc()
}

// CacheResult учитывает обращение к кэшу слотов: hit, miss, error, stale
func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.SlotCacheTotal.WithLabelValues(m.serviceName, result).Inc()
}

// SetRealtimeClients обновляет число подключённых websocket клиентов
func (m *Metrics) SetRealtimeClients(n int) {
	if m == nil {
		return
	}
	m.RealtimeClients.WithLabelValues(m.serviceName).Set(float64(n))
}
