package measures

import (
	"probe-metrics/internal/models"
)

// accumulator is the live state of one probe. Implementations are
// monitorAccumulator, counterAccumulator, watcherAccumulator and
// samplerAccumulator.
type accumulator interface {
	// snapshot copies the state into a measure stamped at now (epoch ms).
	snapshot(now int64) models.Measure
	// settle removes what a successful flush of flushed persisted.
	settle(flushed models.Measure)
}

type monitorAccumulator struct {
	hooks  []string
	counts map[string]int64
}

func newMonitorAccumulator(hooks []string) *monitorAccumulator {
	counts := make(map[string]int64, len(hooks))
	for _, hook := range hooks {
		counts[hook] = 0
	}
	return &monitorAccumulator{hooks: hooks, counts: counts}
}

func (a *monitorAccumulator) hit(event string) bool {
	if _, known := a.counts[event]; !known {
		return false
	}
	a.counts[event]++
	return true
}

func (a *monitorAccumulator) snapshot(now int64) models.Measure {
	counts := make(map[string]int64, len(a.counts))
	for hook, count := range a.counts {
		counts[hook] = count
	}
	return models.Measure{Timestamp: now, Counts: counts}
}

// settle subtracts the flushed counts so hits recorded while the flush was
// in flight are kept.
func (a *monitorAccumulator) settle(flushed models.Measure) {
	for hook, count := range flushed.Counts {
		if _, known := a.counts[hook]; known {
			a.counts[hook] -= count
		}
	}
}

type counterAccumulator struct {
	count int64
}

func (a *counterAccumulator) snapshot(now int64) models.Measure {
	return models.Measure{Timestamp: now, Counts: map[string]int64{models.FieldCount: a.count}}
}

// settle is a no-op: counters are cumulative for the process lifetime.
func (a *counterAccumulator) settle(models.Measure) {}

type watcherAccumulator struct {
	collects models.Collects
	count    int64
	content  []map[string]any
}

func (a *watcherAccumulator) collecting() bool {
	return a.collects.Mode != models.CollectNothing
}

func (a *watcherAccumulator) observe(doc models.Document) {
	if !a.collecting() {
		a.count++
		return
	}
	a.content = append(a.content, Collect(a.collects, doc))
}

func (a *watcherAccumulator) snapshot(now int64) models.Measure {
	if !a.collecting() {
		return models.Measure{Timestamp: now, Counts: map[string]int64{models.FieldCount: a.count}}
	}
	return models.Measure{
		Timestamp:  now,
		Counts:     map[string]int64{},
		HasContent: true,
		Content:    stampContent(a.content, now),
	}
}

// settle drops the flushed prefix of content; content is append-only so
// records collected during the flush stay queued.
func (a *watcherAccumulator) settle(flushed models.Measure) {
	if !a.collecting() {
		a.count -= flushed.Counts[models.FieldCount]
		return
	}
	flushedLen := min(len(flushed.Content), len(a.content))
	remaining := make([]map[string]any, len(a.content)-flushedLen)
	copy(remaining, a.content[flushedLen:])
	a.content = remaining
}

type samplerAccumulator struct {
	collects   models.Collects
	sampleSize int
	reservoir  *Reservoir
	count      int64
	content    []map[string]any
}

func (a *samplerAccumulator) observe(doc models.Document) {
	a.count++
	a.content = a.reservoir.Offer(a.content, a.sampleSize, a.count, Collect(a.collects, doc))
}

func (a *samplerAccumulator) snapshot(now int64) models.Measure {
	return models.Measure{
		Timestamp:  now,
		Counts:     map[string]int64{models.FieldCount: a.count},
		HasContent: true,
		Content:    stampContent(a.content, now),
	}
}

// settle starts a new sampling window. Unlike the watcher it does not keep
// what arrived after the snapshot: documents offered during persistence are
// discarded along with the flushed sample. Slots of that sample may have been
// replaced since the snapshot, so there is no prefix to subtract.
func (a *samplerAccumulator) settle(models.Measure) {
	a.count = 0
	a.content = make([]map[string]any, 0, a.sampleSize)
}

// stampContent returns shallow copies of records with the flush timestamp set.
func stampContent(content []map[string]any, now int64) []map[string]any {
	stamped := make([]map[string]any, len(content))
	for i, record := range content {
		out := make(map[string]any, len(record)+1)
		for key, value := range record {
			out[key] = value
		}
		out[models.FieldTimestamp] = now
		stamped[i] = out
	}
	return stamped
}
