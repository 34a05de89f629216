package delete_draft

import (
	"context"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

type DraftService interface {
	Delete(ctx context.Context, token string, auth domain.AuthContext) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
