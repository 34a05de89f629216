package availability

import "errors"

var (
	// ErrSlotUnavailable возвращается, когда слот черновика пропал из свежей выдачи генератора
	ErrSlotUnavailable = errors.New("slot is no longer available")

	// ErrStaffUnavailable возвращается, когда выбранный мастер больше не назначим на слот
	ErrStaffUnavailable = errors.New("staff is no longer available for slot")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
