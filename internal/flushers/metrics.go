package flushers

import (
	"probe-metrics/internal/shared/metrics"
)

var (
	// metricFlushesTotal counts flush attempts per probe, labeled by error code
	// when persistence failed.
	metricFlushesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFlush,
			Name:      "flushes_total",
		},
		[]string{metrics.FieldProbe, metrics.FieldErrorCode},
	)

	metricFlushedRecordsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFlush,
			Name:      "flushed_records_total",
		},
		[]string{metrics.FieldProbe},
	)

	metricFlushDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFlush,
			Name:      "flush_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldProbe},
	)

	// metricFlushRequestsCoalescedTotal counts immediate flush requests merged
	// into one already pending for the same probe.
	metricFlushRequestsCoalescedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFlush,
			Name:      "requests_coalesced_total",
		},
		[]string{metrics.FieldProbe},
	)
)
