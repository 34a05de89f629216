package events

import (
	"context"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

// LogNotifier замена Publisher, когда events.enabled = false.
// Пишет события в лог вместо брокера, чтобы жизненный цикл записи
// оставался наблюдаемым в окружениях без RabbitMQ.
type LogNotifier struct {
	logger Logger
}

// NewLogNotifier создает нотификатор, пишущий события в лог
func NewLogNotifier(logger Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// BookingCreated логирует событие о созданной записи
func (n *LogNotifier) BookingCreated(_ context.Context, booking *domain.Booking) error {
	n.logger.Info("Event booking created: booking_id=%d, resource_id=%d, status=%s",
		booking.ID, booking.ResourceID, booking.Status)
	return nil
}

// BookingStatusChanged логирует событие о смене статуса записи
func (n *LogNotifier) BookingStatusChanged(_ context.Context, booking *domain.Booking, previous domain.BookingStatus) error {
	n.logger.Info("Event booking status changed: booking_id=%d, status=%s -> %s",
		booking.ID, previous, booking.Status)
	return nil
}

// Close для симметрии с Publisher
func (n *LogNotifier) Close() error {
	return nil
}
