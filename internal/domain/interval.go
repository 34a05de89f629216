package domain

import "time"

// TimeRange is a half-open time interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a normalized interval.
// Если конец не позже начала (нулевой или некорректный), интервалу
// назначается длительность по умолчанию DefaultSlotDurationMinutes.
func NewTimeRange(start, end time.Time) TimeRange {
	if !end.After(start) {
		end = start.Add(time.Duration(DefaultSlotDurationMinutes) * time.Minute)
	}
	return TimeRange{Start: start, End: end}
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints do not overlap: a booking ending at 10:30
// and a slot starting at 10:30 are compatible.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether the instant t lies inside the interval
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Duration returns the length of the interval
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
