package domain

import "time"

// HolidayFrequency describes how often a weekly holiday rule applies
type HolidayFrequency string

const (
	HolidayEveryWeek  HolidayFrequency = "every_week"
	HolidayFirstWeek  HolidayFrequency = "first"
	HolidaySecondWeek HolidayFrequency = "second"
	HolidayThirdWeek  HolidayFrequency = "third"
	HolidayFourthWeek HolidayFrequency = "fourth"
)

// IsValid returns true if the value is a member of the frequency enum
func (f HolidayFrequency) IsValid() bool {
	switch f {
	case HolidayEveryWeek, HolidayFirstWeek, HolidaySecondWeek, HolidayThirdWeek, HolidayFourthWeek:
		return true
	default:
		return false
	}
}

// HolidayRule is a recurring weekly holiday of a staff member,
// e.g. "every Monday" or "second Tuesday of the month".
type HolidayRule struct {
	Frequency HolidayFrequency `json:"frequency"`
	Weekday   time.Weekday     `json:"weekday"`
}

// Matches reports whether the rule marks the given date as a regular holiday
func (r HolidayRule) Matches(date time.Time) bool {
	if date.Weekday() != r.Weekday {
		return false
	}

	switch r.Frequency {
	case HolidayEveryWeek:
		return true
	case HolidayFirstWeek:
		return weekOfMonth(date) == 1
	case HolidaySecondWeek:
		return weekOfMonth(date) == 2
	case HolidayThirdWeek:
		return weekOfMonth(date) == 3
	case HolidayFourthWeek:
		return weekOfMonth(date) == 4
	default:
		return false
	}
}

// AnyHolidayMatches reports whether at least one rule marks the date
func AnyHolidayMatches(rules []HolidayRule, date time.Time) bool {
	for _, rule := range rules {
		if rule.Matches(date) {
			return true
		}
	}
	return false
}

// weekOfMonth возвращает порядковый номер недели для дня месяца:
// 1-7 -> 1, 8-14 -> 2, 15-21 -> 3, 22-28 -> 4, 29-31 -> 5
func weekOfMonth(date time.Time) int {
	return (date.Day()-1)/7 + 1
}
