package build_timeline

import "github.com/avdk/SBM-ReservationService/internal/domain"

// Статус дорожки мастера на день
const (
	LaneStatusWorking     = "working"
	LaneStatusClosed      = "closed"
	LaneStatusShiftNotSet = "shift_not_set"
)

// Request модель запроса таймлайна на день
type Request struct {
	Auth        domain.AuthContext
	Date        string  // дата (YYYY-MM-DD)
	ResourceIDs []int64 // пустой список = все активные мастера
	Timezone    string  // пустое значение = таймзона заведения из конфигурации
}

// Response модель таймлайна: дорожки мастеров на общей оси времени
type Response struct {
	Date     string
	Timezone string

	// Общая ось в целых часах, округлённая наружу по всем блокам дня
	AxisStartHour int
	AxisEndHour   int

	Lanes []Lane
}

// Lane дорожка одного мастера
type Lane struct {
	ResourceID int64
	Name       string
	Status     string // working | closed | shift_not_set

	WorkBlocks []WorkBlock

	// Записи вне рабочих интервалов смены; показываются отдельными
	// блоками, а не скрываются
	OutOfShift []BookingBlock
}

// WorkBlock рабочий интервал смены в десятичных часах
type WorkBlock struct {
	StartHour float64
	EndHour   float64
	Bookings  []BookingBlock
}

// BookingBlock запись, спроецированная на ось дорожки.
// Внутри рабочего блока границы обрезаны до его пределов.
type BookingBlock struct {
	BookingID    int64
	MenuID       int64
	Status       string
	CustomerName string
	StartHour    float64
	EndHour      float64
}
