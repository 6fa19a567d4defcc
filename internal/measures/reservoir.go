package measures

import (
	"math/rand/v2"
	"sync"
)

// Reservoir draws the random replacement slots of Algorithm R. One Reservoir
// is seeded at startup and shared by every sampler probe.
type Reservoir struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewReservoir(seed uint64) *Reservoir {
	return &Reservoir{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Offer applies one step of Algorithm R. seen is the number of records
// observed in the current window, record included. While the sample holds
// fewer than size records the record is appended; afterwards it replaces a
// uniformly drawn slot j in [0, seen) when j < size, and is discarded
// otherwise.
func (r *Reservoir) Offer(sample []map[string]any, size int, seen int64, record map[string]any) []map[string]any {
	if len(sample) < size {
		return append(sample, record)
	}
	if j := r.draw(seen); j < int64(size) {
		sample[j] = record
	}
	return sample
}

func (r *Reservoir) draw(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int64N(n)
}
