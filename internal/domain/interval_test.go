package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestTimeRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeRange
		b    TimeRange
		want bool
	}{
		{
			name: "identical intervals overlap",
			a:    NewTimeRange(at(10, 0), at(11, 0)),
			b:    NewTimeRange(at(10, 0), at(11, 0)),
			want: true,
		},
		{
			name: "partial overlap",
			a:    NewTimeRange(at(10, 0), at(11, 0)),
			b:    NewTimeRange(at(10, 30), at(11, 30)),
			want: true,
		},
		{
			name: "containment overlaps",
			a:    NewTimeRange(at(9, 0), at(12, 0)),
			b:    NewTimeRange(at(10, 0), at(10, 30)),
			want: true,
		},
		{
			name: "touching endpoints do not overlap",
			a:    NewTimeRange(at(10, 0), at(10, 30)),
			b:    NewTimeRange(at(10, 30), at(11, 0)),
			want: false,
		},
		{
			name: "touching endpoints reversed order",
			a:    NewTimeRange(at(10, 30), at(11, 0)),
			b:    NewTimeRange(at(10, 0), at(10, 30)),
			want: false,
		},
		{
			name: "disjoint intervals",
			a:    NewTimeRange(at(9, 0), at(9, 30)),
			b:    NewTimeRange(at(15, 0), at(15, 30)),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Предикат симметричен
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestNewTimeRange_DegenerateInterval(t *testing.T) {
	start := at(10, 0)

	// Нулевой конец: интервал получает длительность по умолчанию
	r := NewTimeRange(start, time.Time{})
	assert.Equal(t, start, r.Start)
	assert.Equal(t, start.Add(DefaultSlotDurationMinutes*time.Minute), r.End)

	// Конец равен началу
	r = NewTimeRange(start, start)
	assert.Equal(t, start.Add(DefaultSlotDurationMinutes*time.Minute), r.End)

	// Конец раньше начала
	r = NewTimeRange(start, start.Add(-time.Hour))
	assert.Equal(t, start.Add(DefaultSlotDurationMinutes*time.Minute), r.End)

	// Нормальный интервал не трогаем
	r = NewTimeRange(start, start.Add(45*time.Minute))
	assert.Equal(t, start.Add(45*time.Minute), r.End)
}

func TestNewTimeRange_DegenerateOverlap(t *testing.T) {
	// Два вырожденных интервала с одинаковым началом пересекаются
	// после нормализации до 30 минут
	a := NewTimeRange(at(10, 0), at(10, 0))
	b := NewTimeRange(at(10, 0), at(10, 0))
	assert.True(t, a.Overlaps(b))

	// Вырожденный интервал в 10:00 достаёт до 10:30 и пересекает слот 10:15
	c := NewTimeRange(at(10, 15), at(10, 45))
	assert.True(t, a.Overlaps(c))
}

func TestTimeRange_Contains(t *testing.T) {
	r := NewTimeRange(at(10, 0), at(11, 0))

	assert.True(t, r.Contains(at(10, 0)))
	assert.True(t, r.Contains(at(10, 59)))
	assert.False(t, r.Contains(at(11, 0))) // правая граница исключена
	assert.False(t, r.Contains(at(9, 59)))
}
