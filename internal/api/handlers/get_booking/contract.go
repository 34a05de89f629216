package get_booking

import (
	"context"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64, auth domain.AuthContext) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
