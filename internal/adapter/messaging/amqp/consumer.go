package amqp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/pkg/apperror"
	"deposit-address-service/pkg/metrics"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// ErrDeliveriesClosed is returned by Run when the broker closes the channel.
var ErrDeliveriesClosed = errors.New("amqp deliveries channel closed")

// Handler processes one assignment request. A transient error requeues the
// delivery; anything else acks it.
type Handler func(ctx context.Context, req domain.AssignmentRequest) error

// ConsumerConfig tunes a Consumer.
type ConsumerConfig struct {
	Queue       string
	Tag         string
	Prefetch    int
	Concurrency int
}

// Consumer feeds deliveries from the work queue to a Handler with manual acks.
type Consumer struct {
	ch      Channel
	cfg     ConsumerConfig
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewConsumer creates a Consumer. m may be nil.
func NewConsumer(ch Channel, cfg ConsumerConfig, m *metrics.Metrics, log zerolog.Logger) *Consumer {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Consumer{ch: ch, cfg: cfg, metrics: m, log: log}
}

// Run consumes until ctx is done or the broker closes the channel.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	if err := c.ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("setting qos: %w", err)
	}

	deliveries, err := c.ch.Consume(c.cfg.Queue, c.cfg.Tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consuming %s: %w", c.cfg.Queue, err)
	}

	c.log.Info().
		Str("queue", c.cfg.Queue).
		Int("concurrency", c.cfg.Concurrency).
		Int("prefetch", c.cfg.Prefetch).
		Msg("consumer started")

	var (
		wg     sync.WaitGroup
		closed = make(chan struct{}, c.cfg.Concurrency)
	)
	for i := 0; i < c.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						closed <- struct{}{}
						return
					}
					c.process(ctx, d, handle)
				}
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		if err := c.ch.Cancel(c.cfg.Tag, false); err != nil {
			c.log.Warn().Err(err).Msg("cancelling consumer")
		}
		c.log.Info().Msg("consumer stopped")
		return nil
	}

	select {
	case <-closed:
		return ErrDeliveriesClosed
	default:
		return nil
	}
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery, handle Handler) {
	req, err := domain.ParseAssignmentRequest(d.Body)
	if err != nil || !req.Valid() {
		c.log.Warn().Err(err).Bytes("body", d.Body).Msg("dropping invalid assignment request")
		c.ack(d)
		c.observe(metrics.DeliveryInvalid)
		return
	}

	err = handle(ctx, req)
	if requeue(err) {
		c.log.Warn().Err(err).Int64("account_id", int64(req.AccountID)).Msg("assignment deferred, requeueing")
		if nackErr := d.Nack(false, true); nackErr != nil {
			c.log.Error().Err(nackErr).Uint64("delivery_tag", d.DeliveryTag).Msg("nack failed")
		}
		c.observe(metrics.DeliveryRequeue)
		return
	}

	if err != nil {
		c.log.Error().Err(err).Int64("account_id", int64(req.AccountID)).Msg("assignment failed")
	}
	c.ack(d)
	c.observe(metrics.DeliveryAck)
}

func requeue(err error) bool {
	return apperror.IsTransient(err) || errors.Is(err, context.Canceled)
}

func (c *Consumer) ack(d amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		c.log.Error().Err(err).Uint64("delivery_tag", d.DeliveryTag).Msg("ack failed")
	}
}

func (c *Consumer) observe(decision string) {
	if c.metrics != nil {
		c.metrics.Delivery(decision)
	}
}
