package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// IsBlocking returns true if the status occupies the staff calendar.
// Only blocking bookings participate in conflict checks.
func (s BookingStatus) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsValid returns true if the value is a member of the status enum
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a direct move to next is allowed.
// Same-status moves are not transitions: callers treat them as no-ops.
//
// Допустимые переходы:
//
//	pending   -> confirmed, cancelled, no_show
//	confirmed -> pending, cancelled, no_show
//	cancelled -> pending, confirmed (реактивация, требует повторной проверки конфликтов)
//	no_show   -> pending, confirmed (реактивация, требует повторной проверки конфликтов)
//
// cancelled <-> no_show запрещены: обе записи неактивны, и смена одной
// неактивной причины на другую скрывала бы фактическую историю визита.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next || !s.IsValid() || !next.IsValid() {
		return false
	}

	switch s {
	case StatusPending, StatusConfirmed:
		return true
	case StatusCancelled, StatusNoShow:
		return next.IsBlocking()
	default:
		return false
	}
}

// Booking represents a confirmed or pending reservation of a staff member
type Booking struct {
	ID         int64
	ResourceID int64 // ID мастера, за которым закреплена запись
	MenuID     int64
	UserID     int64 // 0 = запись без сопоставленного аккаунта (введена менеджером)

	// Denormalized customer data for history and dashboards
	CustomerName  string
	CustomerPhone string

	ServiceStart time.Time
	ServiceEnd   time.Time // конец оказания услуги
	TotalEnd     time.Time // конец занятости мастера (услуга + буфер)

	Status           BookingStatus
	IsStaffPreferred bool // клиент явно выбрал мастера

	// Price snapshot captured at confirmation, never recomputed afterwards
	NominationFee  float64
	BaseTotalPrice float64

	Note         string  // пожелание клиента
	InternalNote *string // служебная заметка менеджера

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the occupancy interval of the booking on the staff calendar
func (b *Booking) Window() TimeRange {
	return NewTimeRange(b.ServiceStart, b.TotalEnd)
}

// IsBlocking returns true if the booking occupies the staff calendar
func (b *Booking) IsBlocking() bool {
	return b.Status.IsBlocking()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.IsBlocking()
}
