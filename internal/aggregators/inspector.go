package aggregators

import (
	"probe-metrics/internal/measures"
	"probe-metrics/internal/models"
	"probe-metrics/internal/shared/svcerrors"

	"github.com/benbjohnson/clock"
)

//go:generate mockgen -source=inspector.go -destination=./mocks/inspector_mock.go -package=mocks
type Inspector interface {
	// Probes lists the active probes ordered by name.
	Probes() []*models.Probe
	// Measure returns a copy of the live accumulator of a probe. It does not
	// flush or reset anything.
	Measure(name string) (*models.Measure, *svcerrors.ServiceError)
}

type inspector struct {
	store *measures.Store
	clock clock.Clock
}

func NewInspector(store *measures.Store, clk clock.Clock) Inspector {
	return &inspector{store: store, clock: clk}
}

func (i *inspector) Probes() []*models.Probe {
	states := i.store.States()
	probes := make([]*models.Probe, 0, len(states))
	for _, state := range states {
		probes = append(probes, state.Probe())
	}
	return probes
}

func (i *inspector) Measure(name string) (*models.Measure, *svcerrors.ServiceError) {
	state, ok := i.store.Get(name)
	if !ok {
		return nil, errProbeNotFound(name)
	}
	measure := state.Snapshot(i.clock.Now().UnixMilli())
	return &measure, nil
}
