package aggregators

import (
	"context"

	"probe-metrics/internal/matchers"
	"probe-metrics/internal/measures"
	"probe-metrics/internal/models"
	"probe-metrics/internal/routing"
	"probe-metrics/internal/shared/loggers"
	"probe-metrics/internal/shared/metrics"
	"probe-metrics/internal/shared/svcerrors"
)

// FlushTrigger asks for a probe to be flushed. It must not block: the
// flush runs outside of the dispatch path.
//
//go:generate mockgen -source=engine.go -destination=./mocks/engine_mock.go -package=mocks
type FlushTrigger interface {
	RequestFlush(name string)
}

type Engine interface {
	// Dispatch routes a named event to the monitor and counter probes that
	// subscribe to it and returns the number of accumulators updated. An
	// event nobody subscribes to is a no-op.
	Dispatch(ctx context.Context, event string) int
	// Watch tests doc against the registered watcher and sampler filters and
	// feeds it to every matching probe. It returns the number of
	// accumulators updated, or an error when the matcher fails.
	Watch(ctx context.Context, doc *models.Document) (int, *svcerrors.ServiceError)
}

type engine struct {
	table   *routing.Table
	store   *measures.Store
	matcher matchers.Matcher
	trigger FlushTrigger
}

func NewEngine(table *routing.Table, store *measures.Store, matcher matchers.Matcher, trigger FlushTrigger) Engine {
	return &engine{table: table, store: store, matcher: matcher, trigger: trigger}
}

func (e *engine) Dispatch(ctx context.Context, event string) int {
	updated := 0
	for _, name := range e.table.Monitors(event) {
		if state, ok := e.store.Get(name); ok && state.Hit(event) {
			e.updated(ctx, state)
			updated++
		}
	}
	for _, name := range e.table.Increasers(event) {
		if state, ok := e.store.Get(name); ok && state.Add(1) {
			e.updated(ctx, state)
			updated++
		}
	}
	for _, name := range e.table.Decreasers(event) {
		if state, ok := e.store.Get(name); ok && state.Add(-1) {
			e.updated(ctx, state)
			updated++
		}
	}

	metricDispatchedTotal.WithLabelValues(kindEvent, metrics.ValueNoError).Inc()
	if updated == 0 {
		metricUnroutedTotal.WithLabelValues(kindEvent).Inc()
		loggers.Ctx(ctx).Debug().Str(loggers.FieldEvent, event).Msg("no probe subscribed to event")
	}
	return updated
}

func (e *engine) Watch(ctx context.Context, doc *models.Document) (int, *svcerrors.ServiceError) {
	filterIDs, err := e.matcher.Test(ctx, doc.Index, doc.Collection, doc.ID, doc.Body)
	if err != nil {
		svcErr := errInternalMatcherFailed(err)
		metricDispatchedTotal.WithLabelValues(kindDocument, svcErr.Code).Inc()
		return 0, svcErr
	}

	updated := 0
	for _, filterID := range filterIDs {
		for _, name := range e.table.Watchers(filterID) {
			if state, ok := e.store.Get(name); ok && state.Observe(*doc) {
				e.updated(ctx, state)
				updated++
			}
		}
		for _, probe := range e.table.Samplers(filterID) {
			if state, ok := e.store.Get(probe.Name); ok && state.Observe(*doc) {
				e.updated(ctx, state)
				updated++
			}
		}
	}

	metricDispatchedTotal.WithLabelValues(kindDocument, metrics.ValueNoError).Inc()
	if updated == 0 {
		metricUnroutedTotal.WithLabelValues(kindDocument).Inc()
	}
	return updated, nil
}

// updated requests an immediate flush for probes without an interval.
func (e *engine) updated(ctx context.Context, state *measures.ProbeState) {
	probe := state.Probe()
	metricAccumulatorUpdatesTotal.WithLabelValues(probe.Name, string(probe.Type())).Inc()

	switch probe.Spec.(type) {
	case models.MonitorSpec, models.CounterSpec, models.WatcherSpec:
		if probe.Immediate() {
			loggers.Ctx(ctx).Debug().Str(loggers.FieldProbe, probe.Name).Msg("requesting immediate flush")
			e.trigger.RequestFlush(probe.Name)
		}
	case models.SamplerSpec:
		// samplers always have an interval
	}
}
