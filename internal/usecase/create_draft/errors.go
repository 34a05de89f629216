package create_draft

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_draft: invalid input data")

	// ErrMenuNotFound возвращается, когда услуга не найдена или отключена
	ErrMenuNotFound = errors.New("create_draft: menu not found")

	// ErrSlotUnavailable возвращается, когда запрошенного слота нет в свежей
	// выдаче генератора
	ErrSlotUnavailable = errors.New("create_draft: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_draft: internal error")
)
