package domain

import "time"

// SlotSnapshot is the copy of a generator slot embedded into a draft
// at selection time. At confirmation the snapshot is matched against
// a freshly generated slot; the fresh slot always wins.
type SlotSnapshot struct {
	SlotID             string    `json:"slot_id"`
	StartAt            time.Time `json:"start_at"`
	EndAt              time.Time `json:"end_at"`
	ServiceEndAt       time.Time `json:"service_end_at,omitempty"` // нулевое значение = совпадает с EndAt
	AssignableStaffIDs []int64   `json:"assignable_staff_ids,omitempty"`
	StaffID            int64     `json:"staff_id,omitempty"` // кандидат от генератора, 0 = не определён
}

// ServiceEnd returns the end of the service itself, falling back to the
// total slot end when the generator did not provide a separate value.
func (s SlotSnapshot) ServiceEnd() time.Time {
	if s.ServiceEndAt.IsZero() {
		return s.EndAt
	}
	return s.ServiceEndAt
}

// Window returns the normalized occupancy interval of the slot
func (s SlotSnapshot) Window() TimeRange {
	return NewTimeRange(s.StartAt, s.EndAt)
}

// CanAssign reports whether the given staff member is inside the
// assignable set of the slot
func (s SlotSnapshot) CanAssign(staffID int64) bool {
	for _, id := range s.AssignableStaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
