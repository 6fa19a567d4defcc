package stores_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"probe-metrics/internal/models"
	"probe-metrics/internal/shared/svcerrors"
	"probe-metrics/internal/stores"
	"probe-metrics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var provisionedProbes = []*models.Probe{
	{Name: "monitor", Spec: models.MonitorSpec{Hooks: []string{"a:b"}}},
	{Name: "counter", Interval: time.Second, Spec: models.CounterSpec{Increasers: []string{"x"}, Decreasers: []string{"y"}}},
	{Name: "volatile", Volatile: true, Spec: models.MonitorSpec{Hooks: []string{"a:b"}}},
}

func TestProvisioner_CreatesIndexAndMissingCollections(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	measureStore := mocks.NewMockMeasureStore(ctrl)
	provisioner := stores.NewProvisioner(measureStore)
	ctx := context.Background()

	gomock.InOrder(
		measureStore.EXPECT().IndexExists(ctx, "measures").Return(false, nil),
		measureStore.EXPECT().CreateIndex(ctx, "measures").Return(nil),
		measureStore.EXPECT().ListCollections(ctx, "measures").Return([]string{"counter"}, nil),
		measureStore.EXPECT().UpdateMapping(ctx, "measures", "monitor", map[string]any{
			"properties": map[string]any{
				"a:b":       map[string]any{"type": "integer"},
				"timestamp": map[string]any{"type": "date"},
			},
		}).Return(nil),
	)

	err := provisioner.Provision(ctx, "measures", provisionedProbes)
	assert.NoError(t, err)
}

func TestProvisioner_ExistingIndex(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	measureStore := mocks.NewMockMeasureStore(ctrl)
	provisioner := stores.NewProvisioner(measureStore)
	ctx := context.Background()

	measureStore.EXPECT().IndexExists(ctx, "measures").Return(true, nil)
	measureStore.EXPECT().CreateIndex(gomock.Any(), gomock.Any()).Times(0)
	measureStore.EXPECT().ListCollections(ctx, "measures").Return([]string{"counter", "monitor"}, nil)
	measureStore.EXPECT().UpdateMapping(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	assert.NoError(t, provisioner.Provision(ctx, "measures", provisionedProbes))
}

func TestProvisioner_Failures(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("store unavailable")

	tests := []struct {
		name  string
		setup func(measureStore *mocks.MockMeasureStore)
		code  string
	}{
		{
			name: "index check fails",
			setup: func(measureStore *mocks.MockMeasureStore) {
				measureStore.EXPECT().IndexExists(gomock.Any(), "measures").Return(false, storeErr)
			},
			code: "STO_9000",
		},
		{
			name: "index creation fails",
			setup: func(measureStore *mocks.MockMeasureStore) {
				measureStore.EXPECT().IndexExists(gomock.Any(), "measures").Return(false, nil)
				measureStore.EXPECT().CreateIndex(gomock.Any(), "measures").Return(storeErr)
			},
			code: "STO_9000",
		},
		{
			name: "collection creation fails",
			setup: func(measureStore *mocks.MockMeasureStore) {
				measureStore.EXPECT().IndexExists(gomock.Any(), "measures").Return(true, nil)
				measureStore.EXPECT().ListCollections(gomock.Any(), "measures").Return([]string{}, nil)
				measureStore.EXPECT().UpdateMapping(gomock.Any(), "measures", "monitor", gomock.Any()).Return(storeErr)
			},
			code: "STO_9001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			measureStore := mocks.NewMockMeasureStore(ctrl)
			tt.setup(measureStore)

			err := stores.NewProvisioner(measureStore).Provision(context.Background(), "measures", provisionedProbes)
			require.Error(t, err)
			assert.ErrorIs(t, err, storeErr)
			assert.Equal(t, tt.code, svcerrors.CodeOf(err))
		})
	}
}

func TestMappingFor(t *testing.T) {
	t.Parallel()

	target := models.Target{Index: "idx", Collection: "col", Filter: map[string]any{}}

	tests := []struct {
		name  string
		probe *models.Probe
		want  map[string]any
	}{
		{
			name:  "counter",
			probe: &models.Probe{Name: "c", Spec: models.CounterSpec{Increasers: []string{"x"}}},
			want: map[string]any{
				"count":     map[string]any{"type": "integer"},
				"timestamp": map[string]any{"type": "date"},
			},
		},
		{
			name:  "counting watcher",
			probe: &models.Probe{Name: "w", Spec: models.WatcherSpec{Target: target}},
			want: map[string]any{
				"count":     map[string]any{"type": "integer"},
				"timestamp": map[string]any{"type": "date"},
			},
		},
		{
			name: "collecting watcher with custom mapping",
			probe: &models.Probe{Name: "w", Spec: models.WatcherSpec{
				Target:   target,
				Collects: models.Collects{Mode: models.CollectAll},
				Mapping:  map[string]any{"status": map[string]any{"type": "keyword"}},
			}},
			want: map[string]any{
				"_id":       map[string]any{"type": "keyword"},
				"status":    map[string]any{"type": "keyword"},
				"timestamp": map[string]any{"type": "date"},
			},
		},
		{
			name: "sampler",
			probe: &models.Probe{Name: "s", Interval: time.Second, Spec: models.SamplerSpec{
				Target:     target,
				Collects:   models.Collects{Mode: models.CollectFields, Fields: []string{"a"}},
				SampleSize: 3,
				Mapping:    map[string]any{"a": map[string]any{"type": "text"}},
			}},
			want: map[string]any{
				"_id":       map[string]any{"type": "keyword"},
				"a":         map[string]any{"type": "text"},
				"timestamp": map[string]any{"type": "date"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, map[string]any{"properties": tt.want}, stores.MappingFor(tt.probe))
		})
	}
}
