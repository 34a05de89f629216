package domain

import (
	"time"

	"github.com/avdk/SBM-ReservationService/pkg/types"
)

// ShiftDayStatus represents the working status of a staff member's day
type ShiftDayStatus string

const (
	ShiftDayOpen            ShiftDayStatus = "open"
	ShiftDayTemporaryOpen   ShiftDayStatus = "temporary_open"
	ShiftDayRegularHoliday  ShiftDayStatus = "regular_holiday"
	ShiftDayTemporaryClosed ShiftDayStatus = "temporary_closed"
	ShiftDayUnavailable     ShiftDayStatus = "unavailable"
	ShiftDayNotSet          ShiftDayStatus = "not_set"
)

// IsClosedType returns true for statuses meaning the staff member
// is definitely not working that day
func (s ShiftDayStatus) IsClosedType() bool {
	return s == ShiftDayRegularHoliday || s == ShiftDayTemporaryClosed || s == ShiftDayUnavailable
}

// IsValid returns true if the value is a member of the status enum
func (s ShiftDayStatus) IsValid() bool {
	switch s {
	case ShiftDayOpen, ShiftDayTemporaryOpen, ShiftDayRegularHoliday,
		ShiftDayTemporaryClosed, ShiftDayUnavailable, ShiftDayNotSet:
		return true
	default:
		return false
	}
}

// ShiftSlot is a single working interval inside a shift day, wall-clock times
type ShiftSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// ShiftEntry describes the planned working day of one staff member.
// Записи ведёт редактор смен; данный сервис их только читает.
type ShiftEntry struct {
	ID         int64
	ResourceID int64
	Date       time.Time // полночь в таймзоне заведения
	Status     ShiftDayStatus
	Slots      []ShiftSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSlots returns true if the entry carries at least one working interval
func (e *ShiftEntry) HasSlots() bool {
	return len(e.Slots) > 0
}
