package drafts

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истёк
	ErrDraftNotFound = errors.New("draft not found")

	// ErrAccessDenied возвращается, когда черновик принадлежит другому владельцу
	ErrAccessDenied = errors.New("draft access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
