// Package routing maps event names and matcher filter ids to the probes that
// subscribe to them.
package routing

import (
	"context"

	"probe-metrics/internal/matchers"
	"probe-metrics/internal/models"
	"probe-metrics/internal/shared/loggers"
)

// Table is built once at startup and read concurrently afterwards.
type Table struct {
	monitors   map[string][]string
	increasers map[string][]string
	decreasers map[string][]string
	watchers   map[string][]string
	samplers   map[string][]*models.Probe

	active []*models.Probe
}

// Build registers every watcher and sampler filter with matcher, exactly once
// per probe, and indexes all probes by the events or filter ids they listen
// to. Probes whose filter registration fails are left out of the table and of
// Active; their errors are returned alongside.
func Build(ctx context.Context, probes []*models.Probe, matcher matchers.Matcher) (*Table, []error) {
	table := &Table{
		monitors:   make(map[string][]string),
		increasers: make(map[string][]string),
		decreasers: make(map[string][]string),
		watchers:   make(map[string][]string),
		samplers:   make(map[string][]*models.Probe),
		active:     make([]*models.Probe, 0, len(probes)),
	}

	var rejected []error
	for _, probe := range probes {
		switch spec := probe.Spec.(type) {
		case models.MonitorSpec:
			for _, hook := range spec.Hooks {
				table.monitors[hook] = appendName(table.monitors[hook], probe.Name)
			}
		case models.CounterSpec:
			for _, event := range spec.Increasers {
				table.increasers[event] = appendName(table.increasers[event], probe.Name)
			}
			for _, event := range spec.Decreasers {
				table.decreasers[event] = appendName(table.decreasers[event], probe.Name)
			}
		case models.WatcherSpec:
			filterID, err := matcher.Register(ctx, spec.Index, spec.Collection, spec.Filter)
			if err != nil {
				rejected = append(rejected, errFilterRegistrationFailed(probe.Name, err))
				continue
			}
			logFilter(ctx, probe, spec.Target, filterID)
			table.watchers[filterID] = appendName(table.watchers[filterID], probe.Name)
		case models.SamplerSpec:
			filterID, err := matcher.Register(ctx, spec.Index, spec.Collection, spec.Filter)
			if err != nil {
				rejected = append(rejected, errFilterRegistrationFailed(probe.Name, err))
				continue
			}
			logFilter(ctx, probe, spec.Target, filterID)
			table.samplers[filterID] = appendProbe(table.samplers[filterID], probe)
		}
		table.active = append(table.active, probe)
	}
	return table, rejected
}

func logFilter(ctx context.Context, probe *models.Probe, target models.Target, filterID string) {
	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldProbe, probe.Name).
		Str(loggers.FieldIndex, target.Index).
		Str(loggers.FieldCollection, target.Collection).
		Str(loggers.FieldFilterID, filterID).
		Msg("registered probe filter")
}

func appendName(names []string, name string) []string {
	for _, existing := range names {
		if existing == name {
			return names
		}
	}
	return append(names, name)
}

func appendProbe(probes []*models.Probe, probe *models.Probe) []*models.Probe {
	for _, existing := range probes {
		if existing.Name == probe.Name {
			return probes
		}
	}
	return append(probes, probe)
}

// Monitors returns the monitor probes counting event.
func (t *Table) Monitors(event string) []string { return t.monitors[event] }

// Increasers returns the counter probes that event increments.
func (t *Table) Increasers(event string) []string { return t.increasers[event] }

// Decreasers returns the counter probes that event decrements.
func (t *Table) Decreasers(event string) []string { return t.decreasers[event] }

// Watchers returns the watcher probes registered under filterID.
func (t *Table) Watchers(filterID string) []string { return t.watchers[filterID] }

// Samplers returns the sampler probes registered under filterID.
func (t *Table) Samplers(filterID string) []*models.Probe { return t.samplers[filterID] }

// Active returns the probes that made it into the table, in input order.
func (t *Table) Active() []*models.Probe { return t.active }
