// Package realtime рассылает подключённым по WebSocket клиентам события
// об изменении расписания, чтобы они перечитали доступные слоты.
package realtime

import (
	"context"
	"encoding/json"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/jalali"
)

const (
	broadcastBuffer = 256
	clientBuffer    = 32
)

// Metrics gauge подключённых клиентов (может быть nil)
type Metrics interface {
	SetRealtimeClients(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Message сообщение, отправляемое клиенту
type Message struct {
	Type          string `json:"type"`
	Date          string `json:"date,omitempty"`
	GregorianDate string `json:"gregorian_date,omitempty"`
	Time          string `json:"time,omitempty"`
}

// Hub набор активных клиентов. Все изменения набора выполняются в Run.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	count      chan chan int

	metrics Metrics
	logger  Logger
}

type client struct {
	send chan []byte
}

func NewHub(metrics Metrics, logger Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		count:      make(chan chan int),
		metrics:    metrics,
		logger:     logger,
	}
}

// Run цикл обработки событий хаба; завершается с отменой ctx
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.clientsChanged()

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				h.clientsChanged()
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// медленный клиент отключается
					h.remove(c)
					h.clientsChanged()
				}
			}

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

// Publish ставит событие в очередь рассылки. Не блокирует вызывающего.
func (h *Hub) Publish(event domain.ScheduleEvent) {
	data, err := json.Marshal(toMessage(event))
	if err != nil {
		h.logger.Error("Realtime - failed to encode event %s: %v", event.Type, err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("Realtime - broadcast queue full, event %s dropped", event.Type)
	}
}

// ClientCount число подключённых клиентов
func (h *Hub) ClientCount(ctx context.Context) int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-ctx.Done():
		return 0
	}
}

func (h *Hub) remove(c *client) {
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) clientsChanged() {
	if h.metrics != nil {
		h.metrics.SetRealtimeClients(len(h.clients))
	}
}

func toMessage(event domain.ScheduleEvent) Message {
	msg := Message{Type: string(event.Type), Time: event.Time}
	if event.Date != nil {
		msg.Date = jalali.FormatJalali(*event.Date)
		msg.GregorianDate = jalali.FormatISO(*event.Date)
	}
	return msg
}
