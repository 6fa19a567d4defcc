package flushers

import (
	"context"

	"probe-metrics/internal/events"
	"probe-metrics/internal/measures"
	"probe-metrics/internal/models"
	"probe-metrics/internal/notifiers"
	"probe-metrics/internal/shared/loggers"
	"probe-metrics/internal/shared/metrics"
	"probe-metrics/internal/stores"

	"github.com/benbjohnson/clock"
)

// Coordinator flushes one probe: it stamps a snapshot of the accumulator,
// persists it, notifies subscribers and resets what was persisted.
//
//go:generate mockgen -source=coordinator.go -destination=./mocks/coordinator_mock.go -package=mocks
type Coordinator interface {
	// Flush returns the persistence error, if any. On error the accumulator
	// is left untouched and nothing is notified.
	Flush(ctx context.Context, state *measures.ProbeState) error
}

type coordinator struct {
	index        string
	measureStore stores.MeasureStore
	notifier     notifiers.Notifier
	clock        clock.Clock
}

// NewCoordinator returns a Coordinator persisting every probe into the
// collection named after it under index.
func NewCoordinator(index string, measureStore stores.MeasureStore, notifier notifiers.Notifier, clk clock.Clock) Coordinator {
	return &coordinator{
		index:        index,
		measureStore: measureStore,
		notifier:     notifier,
		clock:        clk,
	}
}

func (c *coordinator) Flush(ctx context.Context, state *measures.ProbeState) error {
	probe := state.Probe()
	start := c.clock.Now()
	measure := state.Snapshot(start.UnixMilli())
	defer func() {
		metricFlushDuration.WithLabelValues(probe.Name).Observe(c.clock.Since(start).Seconds())
	}()

	if !probe.Volatile {
		if err := c.persist(ctx, probe, measure); err != nil {
			svcErr := errInternalPersistFailed(probe.Name, err)
			metricFlushesTotal.WithLabelValues(probe.Name, svcErr.Code).Inc()
			loggers.Ctx(ctx).Error().
				Err(err).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Str(loggers.FieldProbe, probe.Name).
				Str(loggers.FieldProbeType, string(measure.Type)).
				Interface(loggers.FieldMeasure, measure.Payload()).
				Msg("failed to persist measure, keeping accumulator")
			return svcErr
		}
	}

	c.notifier.Trigger(events.EventMeasure, events.NewMeasureEvent(measure))
	state.Settle(measure)
	metricFlushesTotal.WithLabelValues(probe.Name, metrics.ValueNoError).Inc()
	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldProbe, probe.Name).
		Bool("volatile", probe.Volatile).
		Msg("measure flushed")
	return nil
}

// persist writes a content measure as one record per entry and any other
// measure as a single record. An empty content list writes nothing.
func (c *coordinator) persist(ctx context.Context, probe *models.Probe, measure models.Measure) error {
	if !measure.HasContent {
		if err := c.measureStore.CreateRecord(ctx, c.index, probe.Name, measure.Record()); err != nil {
			return err
		}
		metricFlushedRecordsTotal.WithLabelValues(probe.Name).Inc()
		return nil
	}
	if len(measure.Content) == 0 {
		return nil
	}
	if err := c.measureStore.BulkCreate(ctx, c.index, probe.Name, measure.Content); err != nil {
		return err
	}
	metricFlushedRecordsTotal.WithLabelValues(probe.Name).Add(float64(len(measure.Content)))
	return nil
}
