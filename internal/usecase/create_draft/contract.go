package create_draft

import (
	"context"
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
)

// ScheduleServiceClient интерфейс клиента для ScheduleService
type ScheduleServiceClient interface {
	GetMenu(ctx context.Context, menuID int64) (*scheduleservice.Menu, error)
	GetDailySlots(ctx context.Context, menuID, resourceID int64, date, timezone string) (*scheduleservice.DailySlots, error)
}

// DraftService интерфейс сервиса черновиков
type DraftService interface {
	Create(ctx context.Context, draft *domain.Draft, auth domain.AuthContext) (*domain.Draft, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
