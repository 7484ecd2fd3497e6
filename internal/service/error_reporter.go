package service

import (
	"context"

	"deposit-address-service/pkg/apperror"
	"deposit-address-service/pkg/metrics"

	"github.com/rs/zerolog"
)

// LogReporter implements ports.ErrorReporter by logging at error level and
// counting errors per kind.
type LogReporter struct {
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewLogReporter creates a LogReporter. m may be nil.
func NewLogReporter(log zerolog.Logger, m *metrics.Metrics) *LogReporter {
	return &LogReporter{log: log, metrics: m}
}

// Report records an absorbed failure.
func (r *LogReporter) Report(_ context.Context, err error, fields map[string]any) {
	if err == nil {
		return
	}
	kind := apperror.KindOf(err)

	r.log.Error().
		Err(err).
		Str("kind", string(kind)).
		Fields(fields).
		Msg("deposit address assignment error")

	if r.metrics != nil {
		r.metrics.ErrorReported(string(kind))
	}
}
