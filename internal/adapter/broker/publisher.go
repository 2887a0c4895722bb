package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/polkiloo/qrorder/internal/domain/model"
)

// NotificationsExchange is the fanout exchange customer notifications go to.
const NotificationsExchange = "notifications"

const publishTimeout = 5 * time.Second

// Publisher delivers outbox notifications to customers.
type Publisher interface {
	Publish(ctx context.Context, n model.Notification) error
	Close() error
}

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var connect = func(url string) (channel, io.Closer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ch, conn, nil
}

type message struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// AMQPPublisher publishes notifications as persistent JSON messages.
type AMQPPublisher struct {
	ch     channel
	conn   io.Closer
	logger *slog.Logger
}

// Dial connects to RabbitMQ and declares the notifications exchange.
func Dial(url string, logger *slog.Logger) (*AMQPPublisher, error) {
	ch, conn, err := connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	if err := ch.ExchangeDeclare(NotificationsExchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{ch: ch, conn: conn, logger: logger}, nil
}

// Publish sends a notification to the exchange.
func (p *AMQPPublisher) Publish(ctx context.Context, n model.Notification) error {
	body, err := json.Marshal(message{
		ID:        n.ID.String(),
		OrderID:   n.OrderID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, NotificationsExchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    n.ID.String(),
		Body:         body,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	p.logger.Debug("notification published",
		slog.String("notification_id", n.ID.String()),
		slog.String("order_id", n.OrderID.String()))
	return nil
}

// Close releases the channel and the connection.
func (p *AMQPPublisher) Close() error {
	chErr := p.ch.Close()
	if err := p.conn.Close(); err != nil {
		return err
	}
	return chErr
}

// LogPublisher only logs notifications. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher constructs a log-only publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, n model.Notification) error {
	p.logger.Info("notification",
		slog.String("notification_id", n.ID.String()),
		slog.String("order_id", n.OrderID.String()),
		slog.String("type", string(n.Type)),
		slog.String("title", n.Title))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
