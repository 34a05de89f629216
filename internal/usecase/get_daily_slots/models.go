package get_daily_slots

import "time"

// Request модель запроса слотов доступности на день
type Request struct {
	MenuID     int64  // ID услуги
	ResourceID int64  // ID мастера, 0 = все мастера
	Date       string // дата (YYYY-MM-DD)
	Timezone   string // пустое значение = таймзона заведения из конфигурации
}

// Response модель ответа со слотами доступности
type Response struct {
	Date       string
	MenuID     int64
	ResourceID int64
	Timezone   string
	Slots      []Slot
}

// Slot слот доступности в выдаче генератора
type Slot struct {
	SlotID             string
	StartAt            time.Time
	EndAt              time.Time
	ServiceEndAt       time.Time
	AssignableStaffIDs []int64
	StaffID            int64
}
