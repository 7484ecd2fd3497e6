// Package metrics holds the prometheus collectors of the deposit address worker.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Assignment outcomes.
const (
	OutcomeAssigned        = "assigned"
	OutcomeAlreadyAssigned = "already_assigned"
	OutcomeSkipped         = "skipped"
	OutcomeNoWallet        = "no_wallet"
	OutcomeRetry           = "retry"
	OutcomeTransient       = "transient"
	OutcomeFailed          = "failed"
)

// Delivery decisions taken by the consumer.
const (
	DeliveryAck     = "ack"
	DeliveryRequeue = "requeue"
	DeliveryInvalid = "invalid"
)

// Metrics groups every collector; build one per registry.
type Metrics struct {
	assignments    *prometheus.CounterVec
	assignDuration prometheus.Histogram
	walletCalls    *prometheus.HistogramVec
	retries        prometheus.Counter
	deadLetters    prometheus.Counter
	notifications  prometheus.Counter
	deliveries     *prometheus.CounterVec
	errors         *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deposit_address_assignments_total",
			Help: "Assign invocations partitioned by outcome",
		}, []string{"outcome"}),
		assignDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "deposit_address_assign_duration_seconds",
			Help:    "Duration of a single Assign invocation",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 14), // 5ms -> ~40s
		}),
		walletCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "deposit_address_wallet_call_duration_seconds",
			Help:    "Duration of wallet service CreateAddress calls",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 14),
		}, []string{"gateway", "result"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deposit_address_retries_scheduled_total",
			Help: "Retries scheduled for accounts still missing an address",
		}),
		deadLetters: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deposit_address_dead_letters_total",
			Help: "Accounts that exhausted their retry budget",
		}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deposit_address_notifications_total",
			Help: "deposit_address events published to members",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deposit_address_deliveries_total",
			Help: "Queue deliveries partitioned by ack decision",
		}, []string{"decision"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deposit_address_errors_total",
			Help: "Errors reported by the worker partitioned by kind",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		m.assignments, m.assignDuration, m.walletCalls, m.retries,
		m.deadLetters, m.notifications, m.deliveries, m.errors,
	)
	return m
}

func (m *Metrics) ObserveAssignment(outcome string, d time.Duration) {
	m.assignments.WithLabelValues(outcome).Inc()
	m.assignDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveWalletCall(gateway string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.walletCalls.WithLabelValues(gateway, result).Observe(d.Seconds())
}

func (m *Metrics) RetryScheduled()        { m.retries.Inc() }
func (m *Metrics) DeadLettered()          { m.deadLetters.Inc() }
func (m *Metrics) NotificationPublished() { m.notifications.Inc() }

func (m *Metrics) Delivery(decision string) {
	m.deliveries.WithLabelValues(decision).Inc()
}

func (m *Metrics) ErrorReported(kind string) {
	m.errors.WithLabelValues(kind).Inc()
}
