package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const timeFormat = "15:04" // HH:MM

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOverflow возвращается, когда результат арифметики выходит за границы суток
	ErrTimeOverflow = errors.New("types: time arithmetic overflows day bounds")
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// The zero value is an empty string.
//
// Lexicographic comparison of two valid TimeString values matches
// chronological order, which keeps IsBefore/IsAfter allocation-free.
type TimeString string

// NewTimeString creates a TimeString from a time.Time, keeping only HH:MM.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed HH:MM time.
// Форма строго каноническая: time.Parse принимает "9:30", но такая запись
// ломает лексикографическое сравнение.
func (t TimeString) Validate() error {
	if len(t) != len(timeFormat) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	if _, err := time.Parse(timeFormat, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// IsBefore reports whether t is chronologically before other.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is chronologically after other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Returns ErrTimeOverflow if the result leaves the [00:00, 24:00) day window.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	h, m, err := t.parts()
	if err != nil {
		return "", err
	}

	total := h*60 + m + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s + %dmin", ErrTimeOverflow, string(t), minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// MinutesUntil returns the number of minutes from t to other.
// Negative when other is earlier than t.
func (t TimeString) MinutesUntil(other TimeString) (int, error) {
	h1, m1, err := t.parts()
	if err != nil {
		return 0, err
	}
	h2, m2, err := other.parts()
	if err != nil {
		return 0, err
	}
	return (h2*60 + m2) - (h1*60 + m1), nil
}

// DecimalHours returns the time as a fractional hour value,
// e.g. "09:30" -> 9.5. Used for rendering positions on an hour axis.
func (t TimeString) DecimalHours() (float64, error) {
	h, m, err := t.parts()
	if err != nil {
		return 0, err
	}
	return float64(h) + float64(m)/60.0, nil
}

// String returns the raw HH:MM representation.
func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) parts() (hour, minute int, err error) {
	if len(t) != len(timeFormat) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	parsed, err := time.Parse(timeFormat, string(t))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// Value implements driver.Valuer for writing to SQL text columns.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Accepts text columns and postgres TIME values.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres TIME колонки приходят как "15:04:05" - обрезаем секунды
	if len(s) >= 5 {
		s = s[:5]
	}
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return err
	}
	*t = ts
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// UnmarshalJSON implements json.Unmarshaler. An empty string stays zero.
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = ""
		return nil
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
