package domain

// Default values used when a slot or timeline carries no explicit bounds
const (
	DefaultSlotDurationMinutes = 30

	// Границы оси таймлайна по умолчанию, когда на день нет ни смен, ни записей
	TimelineDefaultStartHour = 9
	TimelineDefaultEndHour   = 18
)

// Business validation constants
const (
	MaxMemoLength               = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 200
	MaxCustomerPhoneLength      = 32
	MaxGuestKeyLength           = 128
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses список статусов, занимающих календарь мастера
// Используется проверкой конфликтов
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses список статусов, не занимающих календарь
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
