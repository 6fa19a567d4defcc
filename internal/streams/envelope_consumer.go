package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"probe-metrics/internal/aggregators"
	"probe-metrics/internal/events"
	"probe-metrics/internal/shared/loggers"
	"probe-metrics/internal/shared/metrics"
	"probe-metrics/internal/shared/svcerrors"
	"probe-metrics/internal/shared/ulid"
)

//go:generate mockgen -source=envelope_consumer.go -destination=./mocks/envelope_consumer_mock.go -package=mocks
type EnvelopeConsumer interface {
	Start(ctx context.Context)
	// Stop closes the queue and waits for the workers to drain it.
	Stop()
}

type envelopeConsumer struct {
	queue  *PartitionedQueue[events.Envelope]
	engine aggregators.Engine

	wg sync.WaitGroup

	logger loggers.Logger
}

func NewEnvelopeConsumer(queue *PartitionedQueue[events.Envelope], engine aggregators.Engine, logger loggers.Logger) EnvelopeConsumer {
	return &envelopeConsumer{
		queue:  queue,
		engine: engine,
		logger: logger,
	}
}

// Start spawns 1 worker goroutine per partition.
func (consumer *envelopeConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

func (consumer *envelopeConsumer) Stop() {
	consumer.queue.Close()
	consumer.wg.Wait()
}

func (consumer *envelopeConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.Envelope) {
	for {
		select {
		case <-ctx.Done():
			return
		case envelope, ok := <-ch:
			if !ok {
				return
			}
			consumer.handle(ctx, partitionIndex, envelope)
		}
	}
}

func (consumer *envelopeConsumer) handle(ctx context.Context, partitionIndex int, envelope events.Envelope) {
	kind := string(envelope.Kind)
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricEnvelopeConsumedTotal.WithLabelValues(streamEnvelope, kind, svcErr.Code).Inc()
		}
	}()

	requestID := envelope.RequestID
	if requestID == "" {
		requestID = ulid.NewULID()
	}
	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionId, fmt.Sprintf("%d", partitionIndex)).
		Str(loggers.FieldRequestID, requestID).
		Logger().WithContext(ctx)

	errorCode := metrics.ValueNoError
	switch envelope.Kind {
	case events.KindEvent:
		consumer.engine.Dispatch(ctx, envelope.Event)
	case events.KindDocument:
		if envelope.Document == nil {
			loggers.Ctx(ctx).Warn().Msg("document envelope without document")
			break
		}
		if _, svcErr := consumer.engine.Watch(ctx, envelope.Document); svcErr != nil {
			errorCode = svcErr.Code
			loggers.Ctx(ctx).Error().
				Err(svcErr).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Str(loggers.FieldIndex, envelope.Document.Index).
				Str(loggers.FieldCollection, envelope.Document.Collection).
				Msg("failed to watch document")
		}
	default:
		loggers.Ctx(ctx).Warn().Str("kind", kind).Msg("unknown envelope kind")
	}
	metricEnvelopeConsumedTotal.WithLabelValues(streamEnvelope, kind, errorCode).Inc()
}
