package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"deposit-address-service/internal/core/domain"
	"deposit-address-service/pkg/backoff"
	"deposit-address-service/pkg/metrics"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	retryDueKey      = "deposit_address:retry:due"
	retryAttemptsKey = "deposit_address:retry:attempts"
	retryDeadKey     = "deposit_address:retry:dead"
)

// Result codes of scheduleScript.
const (
	scheduleAlreadyPending = 0
	scheduleQueued         = 1
	scheduleExhausted      = 2
)

// scheduleScript queues one retry per account. A member already in the due set
// absorbs the request. ARGV[4..] holds the delay (ms) of every attempt.
//
// KEYS: due, attempts. ARGV: member, now_ms, max_attempts, delays...
var scheduleScript = goredis.NewScript(`
if redis.call('ZSCORE', KEYS[1], ARGV[1]) then
	return {0, tonumber(redis.call('HGET', KEYS[2], ARGV[1]) or '0')}
end
local n = redis.call('HINCRBY', KEYS[2], ARGV[1], 1)
if n > tonumber(ARGV[3]) then
	redis.call('HDEL', KEYS[2], ARGV[1])
	return {2, n - 1}
end
redis.call('ZADD', KEYS[1], tonumber(ARGV[2]) + tonumber(ARGV[3 + n]), ARGV[1])
return {1, n}
`)

// popDueScript removes up to ARGV[2] members due at ARGV[1] and returns them
// flattened as member, attempt pairs.
var popDueScript = goredis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, tonumber(ARGV[2]))
local out = {}
for _, m in ipairs(due) do
	redis.call('ZREM', KEYS[1], m)
	out[#out + 1] = m
	out[#out + 1] = redis.call('HGET', KEYS[2], m) or '0'
end
return out
`)

// DeadLetter is what lands on the dead-letter list once retries run out.
type DeadLetter struct {
	AccountID int64     `json:"account_id"`
	Attempts  int       `json:"attempts"`
	DeadAt    time.Time `json:"dead_at"`
}

// RetryScheduler implements ports.RetryScheduler and ports.DueRetrySource on
// a Redis sorted set.
type RetryScheduler struct {
	client      goredis.UniversalClient
	policy      backoff.Policy
	maxAttempts int
	metrics     *metrics.Metrics
	log         zerolog.Logger
	now         func() time.Time
}

// NewRetryScheduler creates a scheduler. m may be nil.
func NewRetryScheduler(client goredis.UniversalClient, policy backoff.Policy, maxAttempts int, m *metrics.Metrics, log zerolog.Logger) *RetryScheduler {
	return &RetryScheduler{
		client:      client,
		policy:      policy,
		maxAttempts: maxAttempts,
		metrics:     m,
		log:         log,
		now:         time.Now,
	}
}

// RequestRetry schedules the next attempt for an account, or dead-letters it
// when the attempt budget is spent.
func (s *RetryScheduler) RequestRetry(ctx context.Context, accountID int64) error {
	member := strconv.FormatInt(accountID, 10)

	args := make([]any, 0, 3+s.maxAttempts)
	args = append(args, member, s.now().UnixMilli(), s.maxAttempts)
	for i := 0; i < s.maxAttempts; i++ {
		args = append(args, s.policy.Delay(i).Milliseconds())
	}

	res, err := scheduleScript.Run(ctx, s.client, []string{retryDueKey, retryAttemptsKey}, args...).Int64Slice()
	if err != nil {
		return retryError("schedule retry", err)
	}
	if len(res) != 2 {
		return retryError("schedule retry", fmt.Errorf("unexpected script reply %v", res))
	}

	attempt := int(res[1])
	switch res[0] {
	case scheduleAlreadyPending:
		s.log.Debug().Int64("account_id", accountID).Int("attempt", attempt).Msg("retry already pending")
	case scheduleQueued:
		if s.metrics != nil {
			s.metrics.RetryScheduled()
		}
		s.log.Info().
			Int64("account_id", accountID).
			Int("attempt", attempt).
			Dur("delay", s.policy.Delay(attempt-1)).
			Msg("deposit address retry scheduled")
	case scheduleExhausted:
		return s.deadLetter(ctx, accountID, attempt)
	}
	return nil
}

func (s *RetryScheduler) deadLetter(ctx context.Context, accountID int64, attempts int) error {
	payload, err := json.Marshal(DeadLetter{AccountID: accountID, Attempts: attempts, DeadAt: s.now().UTC()})
	if err != nil {
		return retryError("encode dead letter", err)
	}
	if err := s.client.RPush(ctx, retryDeadKey, payload).Err(); err != nil {
		return retryError("dead letter", err)
	}
	if s.metrics != nil {
		s.metrics.DeadLettered()
	}
	s.log.Error().
		Int64("account_id", accountID).
		Int("attempts", attempts).
		Msg("deposit address retries exhausted, dead-lettered")
	return nil
}

// Reset drops the attempt counter and any pending retry of an account.
func (s *RetryScheduler) Reset(ctx context.Context, accountID int64) error {
	member := strconv.FormatInt(accountID, 10)

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HDel(ctx, retryAttemptsKey, member)
		pipe.ZRem(ctx, retryDueKey, member)
		return nil
	})
	if err != nil {
		return retryError("reset retry", err)
	}
	return nil
}

// PopDue atomically takes up to limit retries due at now.
func (s *RetryScheduler) PopDue(ctx context.Context, now time.Time, limit int) ([]domain.AssignmentRequest, error) {
	res, err := popDueScript.Run(ctx, s.client, []string{retryDueKey, retryAttemptsKey}, now.UnixMilli(), limit).StringSlice()
	if err != nil {
		return nil, retryError("pop due retries", err)
	}

	reqs := make([]domain.AssignmentRequest, 0, len(res)/2)
	for i := 0; i+1 < len(res); i += 2 {
		id, err := strconv.ParseInt(res[i], 10, 64)
		if err != nil {
			s.log.Warn().Str("member", res[i]).Msg("dropping malformed retry member")
			continue
		}
		attempt, _ := strconv.Atoi(res[i+1])
		reqs = append(reqs, domain.AssignmentRequest{AccountID: domain.AccountRef(id), Attempt: attempt})
	}
	return reqs, nil
}

// Defer puts a popped request back into the due set.
func (s *RetryScheduler) Defer(ctx context.Context, req domain.AssignmentRequest, delay time.Duration) error {
	member := strconv.FormatInt(int64(req.AccountID), 10)
	due := float64(s.now().Add(delay).UnixMilli())

	if err := s.client.ZAdd(ctx, retryDueKey, goredis.Z{Score: due, Member: member}).Err(); err != nil {
		return retryError("defer retry", err)
	}
	return nil
}

// DeadLetters returns the dead-lettered accounts, oldest first.
func (s *RetryScheduler) DeadLetters(ctx context.Context) ([]DeadLetter, error) {
	raw, err := s.client.LRange(ctx, retryDeadKey, 0, -1).Result()
	if err != nil {
		return nil, retryError("read dead letters", err)
	}

	out := make([]DeadLetter, 0, len(raw))
	for _, item := range raw {
		var dl DeadLetter
		if err := json.Unmarshal([]byte(item), &dl); err != nil {
			continue
		}
		out = append(out, dl)
	}
	return out, nil
}
