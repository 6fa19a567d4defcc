package stores

import (
	"context"
	"fmt"

	"probe-metrics/internal/models"
	"probe-metrics/internal/shared/loggers"
)

const (
	mappingTypeInteger = "integer"
	mappingTypeDate    = "date"
	mappingTypeKeyword = "keyword"
)

//go:generate mockgen -source=provisioner.go -destination=./mocks/provisioner_mock.go -package=mocks
type Provisioner interface {
	// Provision makes sure index exists and that every persisted probe has a
	// collection with a mapping. Existing collections are left untouched.
	Provision(ctx context.Context, index string, probes []*models.Probe) error
}

type provisioner struct {
	measureStore MeasureStore
}

func NewProvisioner(measureStore MeasureStore) Provisioner {
	return &provisioner{measureStore: measureStore}
}

func (p *provisioner) Provision(ctx context.Context, index string, probes []*models.Probe) error {
	logger := loggers.Ctx(ctx)

	exists, err := p.measureStore.IndexExists(ctx, index)
	if err != nil {
		return errInternalIndexProvisionFailed(err)
	}
	if !exists {
		if err := p.measureStore.CreateIndex(ctx, index); err != nil {
			return errInternalIndexProvisionFailed(err)
		}
		logger.Info().Str(loggers.FieldIndex, index).Msg("created storage index")
	}

	collections, err := p.measureStore.ListCollections(ctx, index)
	if err != nil {
		return errInternalIndexProvisionFailed(err)
	}
	existing := make(map[string]struct{}, len(collections))
	for _, collection := range collections {
		existing[collection] = struct{}{}
	}

	for _, probe := range probes {
		if probe.Volatile {
			continue
		}
		if _, found := existing[probe.Name]; found {
			continue
		}
		if err := p.measureStore.UpdateMapping(ctx, index, probe.Name, MappingFor(probe)); err != nil {
			return errInternalCollectionProvisionFailed(fmt.Errorf("probe %q: %w", probe.Name, err))
		}
		logger.Info().
			Str(loggers.FieldIndex, index).
			Str(loggers.FieldCollection, probe.Name).
			Str(loggers.FieldProbeType, string(probe.Type())).
			Msg("created probe collection")
	}
	return nil
}

// MappingFor derives the storage mapping of the records a probe persists.
// A watcher or sampler mapping from the probe definition is merged over the
// derived fields.
func MappingFor(probe *models.Probe) map[string]any {
	properties := map[string]any{
		models.FieldTimestamp: map[string]any{"type": mappingTypeDate},
	}
	integer := func() map[string]any { return map[string]any{"type": mappingTypeInteger} }

	var custom map[string]any
	switch spec := probe.Spec.(type) {
	case models.MonitorSpec:
		for _, hook := range spec.Hooks {
			properties[hook] = integer()
		}
	case models.CounterSpec:
		properties[models.FieldCount] = integer()
	case models.WatcherSpec:
		if spec.Collects.Mode == models.CollectNothing {
			properties[models.FieldCount] = integer()
		} else {
			properties[models.FieldID] = map[string]any{"type": mappingTypeKeyword}
		}
		custom = spec.Mapping
	case models.SamplerSpec:
		properties[models.FieldID] = map[string]any{"type": mappingTypeKeyword}
		custom = spec.Mapping
	}

	for field, definition := range custom {
		properties[field] = definition
	}
	return map[string]any{"properties": properties}
}
