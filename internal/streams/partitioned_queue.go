package streams

import (
	"context"
	"encoding/binary"
	"errors"
	"hash/fnv"
	"sync"
)

var ErrQueueClosed = errors.New("queue closed")

// PartitionedQueue is a set of buffered channels. Messages with the same
// partition key always land on the same channel.
type PartitionedQueue[T any] struct {
	partitions []chan T

	mu     sync.RWMutex
	closed bool
}

func NewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	channels := make([]chan T, max(numPartitions, 1))
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Publish blocks while the partition is full, until ctx is done.
func (queue *PartitionedQueue[T]) Publish(ctx context.Context, partitionKey string, msg T) error {
	queue.mu.RLock()
	defer queue.mu.RUnlock()
	if queue.closed {
		return ErrQueueClosed
	}

	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case queue.partitions[idx] <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close rejects further publishes and closes every partition. Messages
// already queued can still be received.
func (queue *PartitionedQueue[T]) Close() {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	if queue.closed {
		return
	}
	queue.closed = true
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.BigEndian.Uint32(sum)
	return int(v % uint32(n))
}
