package scheduleservice

import "time"

// Ограничение по дням недели на уровне услуги
const (
	DayRestrictionNone        = "none"
	DayRestrictionWeekdayOnly = "weekday_only"
	DayRestrictionWeekendOnly = "weekend_only"
)

// Режим подтверждения записей по услуге
const (
	ApprovalModeAuto   = "auto"   // запись подтверждается сразу
	ApprovalModeManual = "manual" // запись ждёт подтверждения менеджером
)

// Menu модель услуги из ScheduleService
type Menu struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	NominationFee   float64 `json:"nomination_fee"`   // надбавка за явный выбор мастера
	DurationMinutes int     `json:"duration_minutes"` // длительность услуги без буфера
	BufferMinutes   int     `json:"buffer_minutes"`   // буфер занятости мастера после услуги

	DayRestriction string `json:"day_restriction"` // none | weekday_only | weekend_only
	ApprovalMode   string `json:"approval_mode"`   // auto | manual

	RequireCancellationPolicy bool `json:"require_cancellation_policy"`
	RequireTermsOfService     bool `json:"require_terms_of_service"`

	IsActive bool `json:"is_active"`
}

// Slot слот доступности, собранный генератором из смен и длительности услуги
type Slot struct {
	SlotID             string    `json:"slot_id"`
	StartAt            time.Time `json:"start_at"`
	EndAt              time.Time `json:"end_at"`
	ServiceEndAt       time.Time `json:"service_end_at,omitempty"`
	AssignableStaffIDs []int64   `json:"assignable_staff_ids"`
	StaffID            int64     `json:"staff_id,omitempty"` // кандидат, если запрошен конкретный мастер
}

// DailySlots ответ генератора доступности на один день
type DailySlots struct {
	Date       string `json:"date"`
	MenuID     int64  `json:"menu_id"`
	ResourceID int64  `json:"resource_id,omitempty"` // 0 = слоты по всем мастерам
	Timezone   string `json:"timezone"`
	Slots      []Slot `json:"slots"`
}

// StaffHoliday повторяющийся еженедельный выходной мастера
type StaffHoliday struct {
	Frequency string `json:"frequency"` // every_week | first | second | third | fourth
	Weekday   int    `json:"weekday"`   // 0 = воскресенье ... 6 = суббота
}

// Staff модель мастера из каталога
type Staff struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	DisplayOrder    int            `json:"display_order"`
	IsActive        bool           `json:"is_active"`
	RegularHolidays []StaffHoliday `json:"regular_holidays,omitempty"`
}

// ErrorResponse модель ошибки от ScheduleService
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
