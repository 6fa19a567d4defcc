package flushers

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"probe-metrics/internal/aggregators"
	"probe-metrics/internal/measures"
	"probe-metrics/internal/shared/loggers"
	"probe-metrics/internal/shared/svcerrors"
	"probe-metrics/internal/shared/ulid"

	"github.com/benbjohnson/clock"
)

// Scheduler runs one flush worker per probe. Interval probes are flushed by
// a repeating ticker created once in Start; immediate probes are flushed
// when the engine requests it.
//
//go:generate mockgen -source=scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks
type Scheduler interface {
	aggregators.FlushTrigger
	Start(ctx context.Context)
	// Stop stops every ticker, runs the flushes already requested and waits
	// for them to finish.
	Stop()
}

type flushWorker struct {
	state *measures.ProbeState
	// requests coalesces flush requests that arrive while a flush is running.
	requests chan struct{}
	ticker   *clock.Ticker
}

type scheduler struct {
	coordinator Coordinator
	clock       clock.Clock
	workers     map[string]*flushWorker

	wg sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}

	logger loggers.Logger
}

func NewScheduler(store *measures.Store, coordinator Coordinator, clk clock.Clock, logger loggers.Logger) Scheduler {
	workers := make(map[string]*flushWorker, store.Len())
	for _, state := range store.States() {
		workers[state.Probe().Name] = &flushWorker{
			state:    state,
			requests: make(chan struct{}, 1),
		}
	}
	return &scheduler{
		coordinator: coordinator,
		clock:       clk,
		workers:     workers,
		stopCh:      make(chan struct{}),
		logger:      logger,
	}
}

// RequestFlush never blocks. A request for a probe that already has one
// pending is merged into it; the pending flush will see the newer state.
func (s *scheduler) RequestFlush(name string) {
	worker, ok := s.workers[name]
	if !ok {
		return
	}
	select {
	case worker.requests <- struct{}{}:
	default:
		metricFlushRequestsCoalescedTotal.WithLabelValues(name).Inc()
	}
}

func (s *scheduler) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		for _, worker := range s.workers {
			if interval := worker.state.Probe().Interval; interval > 0 {
				worker.ticker = s.clock.Ticker(interval)
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()

				s.runWorker(ctx, worker)
			}()
		}
	})
}

func (s *scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *scheduler) runWorker(ctx context.Context, worker *flushWorker) {
	var ticks <-chan time.Time
	if worker.ticker != nil {
		defer worker.ticker.Stop()
		ticks = worker.ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			// A request accepted before Stop is still honored.
			select {
			case <-worker.requests:
				s.flush(ctx, worker.state)
			default:
			}
			return
		case <-worker.requests:
			s.flush(ctx, worker.state)
		case <-ticks:
			s.flush(ctx, worker.state)
		}
	}
}

// flush runs detached from ctx cancellation so a persistence call that has
// started is allowed to complete during shutdown.
func (s *scheduler) flush(ctx context.Context, state *measures.ProbeState) {
	probe := state.Probe()
	defer func() {
		if r := recover(); r != nil {
			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricFlushesTotal.WithLabelValues(probe.Name, svcErr.Code).Inc()
			s.logger.Error().
				Err(panicErr).
				Str(loggers.FieldProbe, probe.Name).
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("flush panic recovered")
		}
	}()

	flushCtx := s.logger.With().
		Str(loggers.FieldProbe, probe.Name).
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Logger().WithContext(context.WithoutCancel(ctx))
	// Failures are logged and counted by the coordinator; the accumulator
	// carries the data to the next attempt.
	_ = s.coordinator.Flush(flushCtx, state)
}
