package confirm_booking

import (
	"context"
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
	"github.com/avdk/SBM-ReservationService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ExistsResourceOverlap(ctx context.Context, resourceID int64, window domain.TimeRange, excludeID int64) (bool, error)
	ExistsUserOverlap(ctx context.Context, userID int64, window domain.TimeRange, excludeID int64) (bool, error)
	ExistsPhoneOverlap(ctx context.Context, phone string, window domain.TimeRange, excludeID int64) (bool, error)
}

// DraftService интерфейс сервиса черновиков
type DraftService interface {
	Get(ctx context.Context, token string, auth domain.AuthContext) (*domain.Draft, error)
	Discard(ctx context.Context, token string) error
}

// AvailabilityService интерфейс сервиса перепроверки доступности
type AvailabilityService interface {
	Revalidate(ctx context.Context, draft *domain.Draft) (*domain.SlotSnapshot, error)
}

// ScheduleServiceClient интерфейс клиента для ScheduleService
type ScheduleServiceClient interface {
	GetMenu(ctx context.Context, menuID int64) (*scheduleservice.Menu, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
	FindByPhoneWithGracefulDegradation(ctx context.Context, phone string) (*userservice.User, error)
}

// Notifier интерфейс публикации событий жизненного цикла записи
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
