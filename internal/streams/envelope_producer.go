package streams

import (
	"context"

	"probe-metrics/internal/events"
)

// EnvelopeProducer publishes ingested events and documents to the
// partitioned queue read by the EnvelopeConsumer.
//
// Envelopes are partitioned by PartitionKey: every occurrence of one event
// name, and every document of one index/collection, goes to the same
// partition. Since each partition has a single consumer worker, they are
// dispatched in the order they were ingested. With one partition the engine
// sees the whole stream sequentially.
//
//go:generate mockgen -source=envelope_producer.go -destination=./mocks/envelope_producer_mock.go -package=mocks
type EnvelopeProducer interface {
	Produce(ctx context.Context, envelope events.Envelope) error
}

type envelopeProducer struct {
	queue *PartitionedQueue[events.Envelope]
}

func NewEnvelopeProducer(queue *PartitionedQueue[events.Envelope]) EnvelopeProducer {
	return &envelopeProducer{
		queue: queue,
	}
}

func (producer *envelopeProducer) Produce(ctx context.Context, envelope events.Envelope) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := producer.queue.Publish(ctx, envelope.PartitionKey(), envelope); err != nil {
		return err
	}
	metricEnvelopeProducedTotal.WithLabelValues(streamEnvelope, string(envelope.Kind)).Inc()
	return nil
}
