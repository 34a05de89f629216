package build_timeline

import (
	"context"
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByResourcesAndWindow(ctx context.Context, resourceIDs []int64, window domain.TimeRange) ([]*domain.Booking, error)
}

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	GetByResourcesAndDate(ctx context.Context, resourceIDs []int64, date time.Time) ([]*domain.ShiftEntry, error)
}

// ScheduleServiceClient интерфейс клиента для ScheduleService
type ScheduleServiceClient interface {
	GetStaffList(ctx context.Context) ([]scheduleservice.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
