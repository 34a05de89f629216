package drafts

import (
	"context"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

// DraftStore интерфейс хранилища черновиков.
// Реализуется Redis-хранилищем и in-memory хранилищем.
type DraftStore interface {
	Put(ctx context.Context, draft *domain.Draft) error
	Get(ctx context.Context, token string) (*domain.Draft, error)
	Update(ctx context.Context, draft *domain.Draft) error
	Delete(ctx context.Context, token string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
