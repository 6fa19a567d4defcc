package streams

import (
	"probe-metrics/internal/shared/metrics"
)

var (
	streamEnvelope              = "envelope"
	metricEnvelopeProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "envelope_published_total",
		},
		[]string{"stream_id", "kind"},
	)

	metricEnvelopeConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "envelope_consumed_total",
		},
		[]string{"stream_id", "kind", metrics.FieldErrorCode},
	)
)
