package amqp

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Publisher publishes JSON messages on a lazily opened channel. A failed
// publish drops the channel; the next call opens a fresh one.
type Publisher struct {
	open func() (Channel, error)

	mu sync.Mutex
	ch Channel
}

// NewPublisher creates a Publisher using open to obtain channels.
func NewPublisher(open func() (Channel, error)) *Publisher {
	return &Publisher{open: open}
}

func (p *Publisher) publish(exchange, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		if p.ch, err = p.open(); err != nil {
			p.ch = nil
			return err
		}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err = p.ch.Publish(exchange, key, false, false, msg); err != nil {
		_ = p.ch.Close()
		p.ch = nil
		return err
	}
	return nil
}

// Close releases the current channel, if any.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}

// AssignmentQueue implements ports.AssignmentQueue.
type AssignmentQueue struct {
	pub        *Publisher
	exchange   string
	routingKey string
}

// NewAssignmentQueue publishes requests to exchange with routingKey.
func NewAssignmentQueue(pub *Publisher, exchange, routingKey string) *AssignmentQueue {
	return &AssignmentQueue{pub: pub, exchange: exchange, routingKey: routingKey}
}

// Enqueue submits an assignment request to the work queue.
func (q *AssignmentQueue) Enqueue(_ context.Context, req domain.AssignmentRequest) error {
	if err := q.pub.publish(q.exchange, q.routingKey, req); err != nil {
		return apperror.ErrBrokerUnavailable(err)
	}
	return nil
}

// Notifier implements ports.NotificationPublisher on a topic exchange.
type Notifier struct {
	pub      *Publisher
	exchange string
}

// NewNotifier creates a Notifier publishing to exchange.
func NewNotifier(pub *Publisher, exchange string) *Notifier {
	return &Notifier{pub: pub, exchange: exchange}
}

// PrivateRoutingKey names a member's private channel for an event type.
func PrivateRoutingKey(memberUID, eventType string) string {
	return "private." + memberUID + "." + eventType
}

// PublishDepositAddress sends the event to the member's private channel.
func (n *Notifier) PublishDepositAddress(_ context.Context, memberUID string, event domain.DepositAddressEvent) error {
	if err := n.pub.publish(n.exchange, PrivateRoutingKey(memberUID, event.Type), event); err != nil {
		return apperror.ErrNotification(err)
	}
	return nil
}
