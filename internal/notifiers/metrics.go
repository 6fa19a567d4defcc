package notifiers

import (
	"probe-metrics/internal/shared/metrics"
)

const (
	outcomeDelivered = "delivered"
	outcomeDropped   = "dropped"
)

var (
	metricNotificationsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubNotify,
			Name:      "notifications_total",
		},
		[]string{"event", "outcome"},
	)

	metricSubscribers = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubNotify,
			Name:      "subscribers",
		},
		[]string{},
	)
)
