// Package amqp carries assignment requests and member notifications over an
// AMQP 0.9.1 broker (RabbitMQ).
package amqp

import (
	"context"
	"errors"
	"fmt"

	"deposit-address-service/config"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// Channel is the subset of *amqp.Channel used by this package.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Cancel(consumer string, noWait bool) error
	Close() error
}

// Broker owns the connection to the broker.
type Broker struct {
	conn *amqp.Connection
	cfg  config.AMQPConfig
	log  zerolog.Logger
}

// Dial connects to the broker.
func Dial(cfg config.AMQPConfig, log zerolog.Logger) (*Broker, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dialing amqp: %w", err)
	}
	log.Info().Str("exchange", cfg.Exchange).Str("queue", cfg.Queue).Msg("amqp connection established")
	return &Broker{conn: conn, cfg: cfg, log: log}, nil
}

// Setup declares exchanges, the work queue and its binding on a one-use channel.
func (b *Broker) Setup() error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("opening amqp channel: %w", err)
	}
	defer ch.Close()
	return DeclareTopology(ch, b.cfg)
}

// DeclareTopology declares:
//
// - cfg.Exchange (direct): assignment requests, bound to cfg.Queue
//
// - cfg.EventsExchange (topic): member notifications, private.<uid>.<event>
func DeclareTopology(ch Channel, cfg config.AMQPConfig) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declaring exchange %s: %w", cfg.Exchange, err)
	}
	if err := ch.ExchangeDeclare(cfg.EventsExchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declaring exchange %s: %w", cfg.EventsExchange, err)
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declaring queue %s: %w", cfg.Queue, err)
	}
	if err := ch.QueueBind(cfg.Queue, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("binding queue %s: %w", cfg.Queue, err)
	}
	return nil
}

// Channel opens a new channel on the connection.
func (b *Broker) Channel() (Channel, error) {
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// Close terminates the connection gracefully.
func (b *Broker) Close() error {
	return b.conn.Close()
}

// Ping implements ports.HealthChecker.
func (b *Broker) Ping(_ context.Context) error {
	if b.conn.IsClosed() {
		return errors.New("amqp connection closed")
	}
	return nil
}

// Name returns the dependency name.
func (b *Broker) Name() string {
	return "rabbitmq"
}
