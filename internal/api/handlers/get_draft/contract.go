package get_draft

import (
	"context"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

type DraftService interface {
	Get(ctx context.Context, token string, auth domain.AuthContext) (*domain.Draft, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
