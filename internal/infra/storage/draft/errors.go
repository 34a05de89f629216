package draft

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истёк его TTL
	ErrDraftNotFound = errors.New("draft.store: draft not found")

	// ErrEncodeDraft возвращается при ошибке сериализации черновика
	ErrEncodeDraft = errors.New("draft.store: failed to encode draft")

	// ErrDecodeDraft возвращается при ошибке десериализации черновика
	ErrDecodeDraft = errors.New("draft.store: failed to decode draft")

	// ErrStoreUnavailable возвращается при ошибках обращения к Redis
	ErrStoreUnavailable = errors.New("draft.store: storage unavailable")
)
