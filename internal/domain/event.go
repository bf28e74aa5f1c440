package domain

import "time"

// EventType тип события об изменении расписания
type EventType string

const (
	EventReservationCreated EventType = "reservation.created"
	EventReservationUpdated EventType = "reservation.updated"
	EventReservationDeleted EventType = "reservation.deleted"
	EventScheduleChanged    EventType = "schedule.changed"
)

// ScheduleEvent уведомление клиентам о том, что доступность слотов изменилась.
// Date == nil означает, что затронуты все даты.
type ScheduleEvent struct {
	Type EventType
	Date *time.Time
	Time string
}
