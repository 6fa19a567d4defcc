package streams_test

import (
	"context"
	"errors"
	"testing"

	aggregatormocks "probe-metrics/internal/aggregators/mocks"
	"probe-metrics/internal/events"
	"probe-metrics/internal/models"
	"probe-metrics/internal/shared/loggers"
	"probe-metrics/internal/shared/svcerrors"
	"probe-metrics/internal/streams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEnvelopeConsumer_DispatchesEventsInOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	engine := aggregatormocks.NewMockEngine(ctrl)

	queue := streams.NewPartitionedQueue[events.Envelope](1, 16)
	producer := streams.NewEnvelopeProducer(queue)
	consumer := streams.NewEnvelopeConsumer(queue, engine, loggers.Nop())

	gomock.InOrder(
		engine.EXPECT().Dispatch(gomock.Any(), "x").Return(1),
		engine.EXPECT().Dispatch(gomock.Any(), "x").Return(1),
		engine.EXPECT().Dispatch(gomock.Any(), "y").Return(1),
	)

	for _, event := range []string{"x", "x", "y"} {
		require.NoError(t, producer.Produce(context.Background(), events.Envelope{Kind: events.KindEvent, Event: event}))
	}

	consumer.Start(context.Background())
	consumer.Stop()
}

func TestEnvelopeConsumer_WatchesDocuments(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	engine := aggregatormocks.NewMockEngine(ctrl)

	queue := streams.NewPartitionedQueue[events.Envelope](2, 16)
	producer := streams.NewEnvelopeProducer(queue)
	consumer := streams.NewEnvelopeConsumer(queue, engine, loggers.Nop())

	ok := &models.Document{Index: "shop", Collection: "orders", ID: "o-1", Body: map[string]any{"total": 3}}
	failing := &models.Document{Index: "shop", Collection: "carts", Body: map[string]any{}}
	engine.EXPECT().Watch(gomock.Any(), ok).Return(2, nil)
	engine.EXPECT().Watch(gomock.Any(), failing).
		Return(0, svcerrors.NewInternalError("AGG_9000", errors.New("matcher down")))

	consumer.Start(context.Background())
	require.NoError(t, producer.Produce(context.Background(), events.Envelope{Kind: events.KindDocument, Document: ok}))
	require.NoError(t, producer.Produce(context.Background(), events.Envelope{Kind: events.KindDocument, Document: failing}))
	require.NoError(t, producer.Produce(context.Background(), events.Envelope{Kind: events.KindDocument}))
	consumer.Stop()
}

func TestEnvelopeConsumer_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	engine := aggregatormocks.NewMockEngine(ctrl)

	queue := streams.NewPartitionedQueue[events.Envelope](1, 4)
	producer := streams.NewEnvelopeProducer(queue)
	consumer := streams.NewEnvelopeConsumer(queue, engine, loggers.Nop())

	gomock.InOrder(
		engine.EXPECT().Dispatch(gomock.Any(), "boom").DoAndReturn(func(context.Context, string) int {
			panic("boom")
		}),
		engine.EXPECT().Dispatch(gomock.Any(), "after").Return(0),
	)

	consumer.Start(context.Background())
	require.NoError(t, producer.Produce(context.Background(), events.Envelope{Kind: events.KindEvent, Event: "boom"}))
	require.NoError(t, producer.Produce(context.Background(), events.Envelope{Kind: events.KindEvent, Event: "after"}))
	consumer.Stop()
}

func TestEnvelopeProducer_FailsAfterStop(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	queue := streams.NewPartitionedQueue[events.Envelope](1, 1)
	consumer := streams.NewEnvelopeConsumer(queue, aggregatormocks.NewMockEngine(ctrl), loggers.Nop())
	consumer.Start(context.Background())
	consumer.Stop()

	err := streams.NewEnvelopeProducer(queue).Produce(context.Background(), events.Envelope{Kind: events.KindEvent, Event: "x"})
	assert.ErrorIs(t, err, streams.ErrQueueClosed)
}

func TestEnvelopeProducer_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	queue := streams.NewPartitionedQueue[events.Envelope](1, 1)
	err := streams.NewEnvelopeProducer(queue).Produce(ctx, events.Envelope{Kind: events.KindEvent, Event: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
