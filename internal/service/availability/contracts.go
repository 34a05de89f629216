package availability

import (
	"context"

	"github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
)

// ScheduleServiceClient интерфейс клиента генератора доступности
type ScheduleServiceClient interface {
	GetDailySlots(ctx context.Context, menuID, resourceID int64, date string, timezone string) (*scheduleservice.DailySlots, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
