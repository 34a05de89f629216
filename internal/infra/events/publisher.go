// Package events публикует события жизненного цикла записи в RabbitMQ.
// Публикация best-effort: вызывающий код логирует ошибку и продолжает,
// подтверждённая запись не откатывается из-за недоступности брокера.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

// Publisher публикует события записи в topic exchange
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: NewPublisher - dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: NewPublisher - open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: NewPublisher - declare exchange: %v", ErrConnect, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// BookingCreated публикует событие о созданной записи.
// Routing key зависит от начального статуса: запись, требующая
// подтверждения салоном, и сразу подтверждённая запись обрабатываются
// разными потребителями.
func (p *Publisher) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	key := KeyBookingPendingCreated
	if booking.Status == domain.StatusConfirmed {
		key = KeyBookingConfirmedCreated
	}

	return p.publish(ctx, key, newBookingEvent(booking, ""))
}

// BookingStatusChanged публикует событие о смене статуса записи
func (p *Publisher) BookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) error {
	return p.publish(ctx, KeyBookingStatusChanged, newBookingEvent(booking, previous))
}

// Close закрывает канал и соединение с брокером
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, key string, event BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: publish - marshal event: %v", ErrPublish, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("%w: publish - %s: %v", ErrPublish, key, err)
	}

	return nil
}

func newBookingEvent(booking *domain.Booking, previous domain.BookingStatus) BookingEvent {
	return BookingEvent{
		BookingID:      booking.ID,
		ResourceID:     booking.ResourceID,
		MenuID:         booking.MenuID,
		UserID:         booking.UserID,
		CustomerName:   booking.CustomerName,
		CustomerPhone:  booking.CustomerPhone,
		ServiceStart:   booking.ServiceStart,
		ServiceEnd:     booking.ServiceEnd,
		Status:         string(booking.Status),
		PreviousStatus: string(previous),
		OccurredAt:     time.Now().UTC(),
	}
}
