package service

import (
	"context"
	"time"

	"deposit-address-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// RetryRelay moves due retries from the scheduler back onto the work queue.
type RetryRelay struct {
	source     ports.DueRetrySource
	queue      ports.AssignmentQueue
	interval   time.Duration
	batchSize  int
	deferDelay time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

// NewRetryRelay creates a relay polling every interval. A request that cannot
// be published is put back deferDelay later.
func NewRetryRelay(source ports.DueRetrySource, queue ports.AssignmentQueue, interval time.Duration, batchSize int, deferDelay time.Duration, log zerolog.Logger) *RetryRelay {
	if batchSize < 1 {
		batchSize = 1
	}
	return &RetryRelay{
		source:     source,
		queue:      queue,
		interval:   interval,
		batchSize:  batchSize,
		deferDelay: deferDelay,
		log:        log,
		now:        time.Now,
	}
}

// Run polls until ctx is done.
func (r *RetryRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info().Dur("interval", r.interval).Msg("retry relay started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("retry relay stopped")
			return
		case <-ticker.C:
			if _, err := r.RelayDue(ctx); err != nil && ctx.Err() == nil {
				r.log.Error().Err(err).Msg("relaying due retries")
			}
		}
	}
}

// RelayDue publishes every retry due now and returns how many were sent.
func (r *RetryRelay) RelayDue(ctx context.Context) (int, error) {
	sent := 0
	for {
		reqs, err := r.source.PopDue(ctx, r.now(), r.batchSize)
		if err != nil {
			return sent, err
		}

		failed := 0
		for _, req := range reqs {
			if err := r.queue.Enqueue(ctx, req); err != nil {
				failed++
				r.log.Warn().Err(err).Int64("account_id", int64(req.AccountID)).Msg("republishing retry failed, deferring")
				if err := r.source.Defer(ctx, req, r.deferDelay); err != nil {
					r.log.Error().Err(err).Int64("account_id", int64(req.AccountID)).Msg("retry lost")
				}
				continue
			}
			sent++
		}

		// A short batch drains the set; a failing broker ends the pass early.
		if len(reqs) < r.batchSize || failed > 0 {
			return sent, nil
		}
	}
}
