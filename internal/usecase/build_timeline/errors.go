package build_timeline

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("build_timeline: invalid input data")

	// ErrAccessDenied возвращается, когда у вызывающего нет права
	// управления записями
	ErrAccessDenied = errors.New("build_timeline: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("build_timeline: internal error")
)
