package aggregators

import (
	"probe-metrics/internal/shared/metrics"
)

const (
	kindEvent    = "event"
	kindDocument = "document"
)

var (
	// metricDispatchedTotal counts dispatched events and documents, labeled by
	// kind ("event" or "document") and by error code for documents the matcher
	// could not test.
	metricDispatchedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDispatch,
			Name:      "dispatched_total",
		},
		[]string{"kind", metrics.FieldErrorCode},
	)

	// metricUnroutedTotal counts events and documents no probe subscribes to.
	metricUnroutedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDispatch,
			Name:      "unrouted_total",
		},
		[]string{"kind"},
	)

	metricAccumulatorUpdatesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDispatch,
			Name:      "accumulator_updates_total",
		},
		[]string{metrics.FieldProbe, metrics.FieldProbeType},
	)
)
