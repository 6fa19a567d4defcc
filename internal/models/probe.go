package models

import (
	"encoding/json"
	"time"
)

type ProbeType string

const (
	ProbeMonitor ProbeType = "monitor"
	ProbeCounter ProbeType = "counter"
	ProbeWatcher ProbeType = "watcher"
	ProbeSampler ProbeType = "sampler"
)

// Valid reports whether t is one of the four known probe types.
func (t ProbeType) Valid() bool {
	switch t {
	case ProbeMonitor, ProbeCounter, ProbeWatcher, ProbeSampler:
		return true
	}
	return false
}

// Probe is a compiled, immutable probe definition. Name doubles as the
// collection the probe's measures are persisted to.
type Probe struct {
	Name string
	// Interval between scheduled flushes. Zero means the probe flushes after
	// every update.
	Interval time.Duration
	// Volatile probes are never persisted; they still notify and reset.
	Volatile bool
	Spec     ProbeSpec
}

// Type returns the probe type carried by p.Spec.
func (p *Probe) Type() ProbeType {
	return p.Spec.probeType()
}

// Immediate reports whether the probe flushes on every update.
func (p *Probe) Immediate() bool {
	return p.Interval == 0
}

// ProbeSpec holds the type-specific part of a probe. It is implemented only
// by MonitorSpec, CounterSpec, WatcherSpec and SamplerSpec.
type ProbeSpec interface {
	probeType() ProbeType
}

// MonitorSpec counts occurrences of each hook event.
type MonitorSpec struct {
	Hooks []string
}

// CounterSpec keeps a single running count, moved up by increasers and down by
// decreasers. The two sets are disjoint.
type CounterSpec struct {
	Increasers []string
	Decreasers []string
}

// Target is the data location a content probe observes, plus the matcher
// filter documents must satisfy. An empty filter matches everything.
type Target struct {
	Index      string
	Collection string
	Filter     map[string]any
}

// WatcherSpec collects (or counts) every matching document.
type WatcherSpec struct {
	Target
	Collects Collects
	// Mapping is an optional storage mapping for collected fields.
	Mapping map[string]any
}

// SamplerSpec keeps a uniform random sample of SampleSize matching documents
// per interval.
type SamplerSpec struct {
	Target
	Collects   Collects
	SampleSize int
	Mapping    map[string]any
}

func (MonitorSpec) probeType() ProbeType { return ProbeMonitor }
func (CounterSpec) probeType() ProbeType { return ProbeCounter }
func (WatcherSpec) probeType() ProbeType { return ProbeWatcher }
func (SamplerSpec) probeType() ProbeType { return ProbeSampler }

type CollectMode int

const (
	// CollectNothing only counts matching documents.
	CollectNothing CollectMode = iota
	// CollectAll keeps whole document bodies.
	CollectAll
	// CollectFields keeps the listed dotted paths.
	CollectFields
)

const CollectWildcard = "*"

type Collects struct {
	Mode   CollectMode
	Fields []string
}

func (c Collects) MarshalJSON() ([]byte, error) {
	switch c.Mode {
	case CollectAll:
		return json.Marshal(CollectWildcard)
	case CollectFields:
		return json.Marshal(c.Fields)
	default:
		return []byte("null"), nil
	}
}

// MarshalJSON renders the probe in the same shape probe definitions are
// written in, with the interval in milliseconds.
func (p *Probe) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"name":     p.Name,
		"type":     p.Type(),
		"volatile": p.Volatile,
		"interval": nil,
	}
	if !p.Immediate() {
		out["interval"] = p.Interval.Milliseconds()
	}

	switch spec := p.Spec.(type) {
	case MonitorSpec:
		out["hooks"] = spec.Hooks
	case CounterSpec:
		out["increasers"] = spec.Increasers
		out["decreasers"] = spec.Decreasers
	case WatcherSpec:
		addTarget(out, spec.Target)
		out["collects"] = spec.Collects
	case SamplerSpec:
		addTarget(out, spec.Target)
		out["collects"] = spec.Collects
		out["sampleSize"] = spec.SampleSize
	}
	return json.Marshal(out)
}

func addTarget(out map[string]any, target Target) {
	out["index"] = target.Index
	out["collection"] = target.Collection
	out["filter"] = target.Filter
}
