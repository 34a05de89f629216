package build_timeline

import (
	"math"
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
)

// axisBounds накапливает общие границы оси по всем отображаемым блокам
type axisBounds struct {
	min  float64
	max  float64
	seen bool
}

func (a *axisBounds) observe(start, end float64) {
	if !a.seen {
		a.min, a.max = start, end
		a.seen = true
		return
	}
	if start < a.min {
		a.min = start
	}
	if end > a.max {
		a.max = end
	}
}

// rounded возвращает ось, округлённую наружу до целых часов.
// Когда на день нечего показывать, берутся границы по умолчанию.
func (a *axisBounds) rounded() (int, int) {
	if !a.seen {
		return domain.TimelineDefaultStartHour, domain.TimelineDefaultEndHour
	}
	return int(math.Floor(a.min)), int(math.Ceil(a.max))
}

// buildLane раскладывает смену и записи одного мастера в дорожку.
// Запись попадает в первый пересекающийся рабочий блок и обрезается
// до его границ; записи вне смены остаются отдельными блоками.
func buildLane(
	staff scheduleservice.Staff,
	entry *domain.ShiftEntry,
	bookings []*domain.Booking,
	day time.Time,
	loc *time.Location,
	axis *axisBounds,
) Lane {
	lane := Lane{
		ResourceID: staff.ID,
		Name:       staff.Name,
	}

	var blocks []WorkBlock
	if entry != nil {
		for _, slot := range entry.Slots {
			startHour, errStart := slot.Start.DecimalHours()
			endHour, errEnd := slot.End.DecimalHours()
			if errStart != nil || errEnd != nil {
				continue
			}
			blocks = append(blocks, WorkBlock{StartHour: startHour, EndHour: endHour})
			axis.observe(startHour, endHour)
		}
	}

	lane.Status = laneStatus(blocks, entry, staff, day)

	for _, booking := range bookings {
		block := BookingBlock{
			BookingID:    booking.ID,
			MenuID:       booking.MenuID,
			Status:       string(booking.Status),
			CustomerName: booking.CustomerName,
			StartHour:    clockHours(booking.ServiceStart.In(loc), day),
			EndHour:      clockHours(booking.TotalEnd.In(loc), day),
		}

		placed := false
		for i := range blocks {
			if block.StartHour < blocks[i].EndHour && block.EndHour > blocks[i].StartHour {
				clamped := block
				if clamped.StartHour < blocks[i].StartHour {
					clamped.StartHour = blocks[i].StartHour
				}
				if clamped.EndHour > blocks[i].EndHour {
					clamped.EndHour = blocks[i].EndHour
				}
				blocks[i].Bookings = append(blocks[i].Bookings, clamped)
				placed = true
				break
			}
		}

		if !placed {
			lane.OutOfShift = append(lane.OutOfShift, block)
			axis.observe(block.StartHour, block.EndHour)
		}
	}

	lane.WorkBlocks = blocks
	return lane
}

// laneStatus выводит статус заголовка дорожки.
// При отсутствии смены на день решают еженедельные выходные мастера.
func laneStatus(blocks []WorkBlock, entry *domain.ShiftEntry, staff scheduleservice.Staff, day time.Time) string {
	switch {
	case len(blocks) > 0:
		return LaneStatusWorking
	case entry != nil && entry.Status.IsClosedType():
		return LaneStatusClosed
	case entry != nil:
		return LaneStatusShiftNotSet
	case domain.AnyHolidayMatches(holidayRules(staff), day):
		return LaneStatusClosed
	default:
		return LaneStatusShiftNotSet
	}
}

// holidayRules переводит выходные мастера из модели каталога в доменные правила
func holidayRules(staff scheduleservice.Staff) []domain.HolidayRule {
	if len(staff.RegularHolidays) == 0 {
		return nil
	}

	rules := make([]domain.HolidayRule, 0, len(staff.RegularHolidays))
	for _, h := range staff.RegularHolidays {
		rules = append(rules, domain.HolidayRule{
			Frequency: domain.HolidayFrequency(h.Frequency),
			Weekday:   time.Weekday(h.Weekday),
		})
	}
	return rules
}

// clockHours переводит момент в десятичный час внутри дня day.
// Моменты до начала суток дают 0, после конца - 24: запись, перешедшую
// через полночь, ось не растягивает за пределы дня.
func clockHours(t time.Time, day time.Time) float64 {
	year, month, dayOfMonth := t.Date()
	dayYear, dayMonth, dayDay := day.Date()

	switch {
	case year == dayYear && month == dayMonth && dayOfMonth == dayDay:
		return float64(t.Hour()) + float64(t.Minute())/60.0
	case t.Before(day):
		return 0
	default:
		return 24
	}
}
