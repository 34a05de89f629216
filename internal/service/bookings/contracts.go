package bookings

import (
	"context"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	ExistsResourceOverlap(ctx context.Context, resourceID int64, window domain.TimeRange, excludeID int64) (bool, error)
	ExistsUserOverlap(ctx context.Context, userID int64, window domain.TimeRange, excludeID int64) (bool, error)
	ExistsPhoneOverlap(ctx context.Context, phone string, window domain.TimeRange, excludeID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс публикации событий жизненного цикла записи
type Notifier interface {
	BookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
