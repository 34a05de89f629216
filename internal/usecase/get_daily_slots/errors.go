package get_daily_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_daily_slots: invalid input data")

	// ErrMenuNotFound возвращается, когда услуга не найдена или отключена
	ErrMenuNotFound = errors.New("get_daily_slots: menu not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_daily_slots: internal error")
)
