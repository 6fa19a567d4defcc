package measures

import (
	"sort"
	"sync"

	"probe-metrics/internal/models"
)

// ProbeState owns the accumulator of one probe. All methods are safe for
// concurrent use; each probe has its own lock.
type ProbeState struct {
	probe *models.Probe

	mu  sync.Mutex
	acc accumulator
}

func newProbeState(probe *models.Probe, reservoir *Reservoir) *ProbeState {
	state := &ProbeState{probe: probe}
	switch spec := probe.Spec.(type) {
	case models.MonitorSpec:
		state.acc = newMonitorAccumulator(spec.Hooks)
	case models.CounterSpec:
		state.acc = &counterAccumulator{}
	case models.WatcherSpec:
		state.acc = &watcherAccumulator{collects: spec.Collects}
	case models.SamplerSpec:
		state.acc = &samplerAccumulator{
			collects:   spec.Collects,
			sampleSize: spec.SampleSize,
			reservoir:  reservoir,
			content:    make([]map[string]any, 0, spec.SampleSize),
		}
	}
	return state
}

func (s *ProbeState) Probe() *models.Probe {
	return s.probe
}

// Hit counts one occurrence of a monitor hook. It reports false when the
// probe is not a monitor or event is not one of its hooks.
func (s *ProbeState) Hit(event string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.acc.(*monitorAccumulator)
	return ok && acc.hit(event)
}

// Add moves a counter probe's count by delta.
func (s *ProbeState) Add(delta int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.acc.(*counterAccumulator)
	if ok {
		acc.count += delta
	}
	return ok
}

// Observe records a matched document for a watcher or sampler probe.
func (s *ProbeState) Observe(doc models.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch acc := s.acc.(type) {
	case *watcherAccumulator:
		acc.observe(doc)
	case *samplerAccumulator:
		acc.observe(doc)
	default:
		return false
	}
	return true
}

// Snapshot copies the accumulator without modifying it. now is the flush
// time in epoch milliseconds.
func (s *ProbeState) Snapshot(now int64) models.Measure {
	s.mu.Lock()
	measure := s.acc.snapshot(now)
	s.mu.Unlock()

	measure.Probe = s.probe.Name
	measure.Type = s.probe.Type()
	return measure
}

// Settle resets the accumulator after flushed was persisted: monitor hooks
// and watcher counts lose the flushed amounts, watcher content loses the
// flushed records, samplers start a new window and counters are untouched.
func (s *ProbeState) Settle(flushed models.Measure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acc.settle(flushed)
}

// Store holds one ProbeState per active probe.
type Store struct {
	states map[string]*ProbeState
	names  []string
}

func NewStore(probes []*models.Probe, reservoir *Reservoir) *Store {
	store := &Store{
		states: make(map[string]*ProbeState, len(probes)),
		names:  make([]string, 0, len(probes)),
	}
	for _, probe := range probes {
		if _, duplicate := store.states[probe.Name]; duplicate {
			continue
		}
		store.states[probe.Name] = newProbeState(probe, reservoir)
		store.names = append(store.names, probe.Name)
	}
	sort.Strings(store.names)
	return store
}

func (s *Store) Get(name string) (*ProbeState, bool) {
	state, ok := s.states[name]
	return state, ok
}

// States returns every probe state ordered by probe name.
func (s *Store) States() []*ProbeState {
	states := make([]*ProbeState, 0, len(s.names))
	for _, name := range s.names {
		states = append(states, s.states[name])
	}
	return states
}

func (s *Store) Len() int {
	return len(s.names)
}
