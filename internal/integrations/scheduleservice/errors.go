package scheduleservice

import "errors"

var (
	// ErrMenuNotFound возвращается, когда услуга не найдена
	ErrMenuNotFound = errors.New("scheduleservice client: menu not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("scheduleservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("scheduleservice client: invalid response")
)
