package events

import "time"

// Routing keys событий записи
const (
	KeyBookingPendingCreated   = "booking.pending_created"
	KeyBookingConfirmedCreated = "booking.confirmed_created"
	KeyBookingStatusChanged    = "booking.status_changed"
)

// BookingEvent полезная нагрузка событий записи.
// Потребители: уведомления клиентам и дашборд салона.
type BookingEvent struct {
	BookingID      int64     `json:"booking_id"`
	ResourceID     int64     `json:"resource_id"`
	MenuID         int64     `json:"menu_id"`
	UserID         int64     `json:"user_id,omitempty"`
	CustomerName   string    `json:"customer_name"`
	CustomerPhone  string    `json:"customer_phone"`
	ServiceStart   time.Time `json:"service_start"`
	ServiceEnd     time.Time `json:"service_end"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
