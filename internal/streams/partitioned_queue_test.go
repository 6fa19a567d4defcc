package streams

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionIndex_IsStableAndInRange(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "doc:create", "shop/orders", "a:b"} {
		first := partitionIndex(key, 8)
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 8)
		assert.Equal(t, first, partitionIndex(key, 8))
		assert.Equal(t, 0, partitionIndex(key, 1))
	}
}

func TestPartitionedQueue_SameKeyKeepsOrder(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[int](4, 8)
	for i := range 5 {
		require.NoError(t, queue.Publish(context.Background(), "key", i))
	}

	ch := queue.partitions[partitionIndex("key", 4)]
	for i := range 5 {
		assert.Equal(t, i, <-ch)
	}
}

func TestPartitionedQueue_PublishHonorsContext(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[int](1, 1)
	require.NoError(t, queue.Publish(context.Background(), "k", 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, queue.Publish(ctx, "k", 2), context.DeadlineExceeded)
}

func TestPartitionedQueue_CloseRejectsPublishAndKeepsQueued(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[string](1, 2)
	require.NoError(t, queue.Publish(context.Background(), "k", "queued"))

	queue.Close()
	queue.Close()

	assert.ErrorIs(t, queue.Publish(context.Background(), "k", "late"), ErrQueueClosed)
	msg, ok := <-queue.partitions[0]
	assert.True(t, ok)
	assert.Equal(t, "queued", msg)
	_, ok = <-queue.partitions[0]
	assert.False(t, ok)
}

func TestNewPartitionedQueue_AtLeastOnePartition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, NewPartitionedQueue[int](0, 1).PartitionCount())
	assert.Equal(t, 3, NewPartitionedQueue[int](3, 1).PartitionCount())
}
