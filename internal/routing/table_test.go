package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"probe-metrics/internal/matchers"
	"probe-metrics/internal/matchers/mocks"
	"probe-metrics/internal/models"
	"probe-metrics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func names(probes []*models.Probe) []string {
	out := make([]string, 0, len(probes))
	for _, probe := range probes {
		out = append(out, probe.Name)
	}
	return out
}

func TestBuild_EventTables(t *testing.T) {
	t.Parallel()

	probes := []*models.Probe{
		{Name: "m1", Spec: models.MonitorSpec{Hooks: []string{"a:b", "c:d"}}},
		{Name: "m2", Spec: models.MonitorSpec{Hooks: []string{"a:b"}}},
		{Name: "c1", Spec: models.CounterSpec{Increasers: []string{"x"}, Decreasers: []string{"y"}}},
		{Name: "c2", Spec: models.CounterSpec{Increasers: []string{"y"}, Decreasers: []string{"x"}}},
	}

	table, rejected := Build(context.Background(), probes, matchers.NewMatcher())

	require.Empty(t, rejected)
	assert.Equal(t, []string{"m1", "m2"}, table.Monitors("a:b"))
	assert.Equal(t, []string{"m1"}, table.Monitors("c:d"))
	assert.Equal(t, []string{"c1"}, table.Increasers("x"))
	assert.Equal(t, []string{"c2"}, table.Decreasers("x"))
	assert.Equal(t, []string{"c2"}, table.Increasers("y"))
	assert.Equal(t, []string{"c1"}, table.Decreasers("y"))
	assert.Empty(t, table.Monitors("x"))
	assert.Empty(t, table.Increasers("unknown"))
	assert.Equal(t, []string{"m1", "m2", "c1", "c2"}, names(table.Active()))
}

func TestBuild_DuplicateHooksAreIndexedOnce(t *testing.T) {
	t.Parallel()

	probes := []*models.Probe{
		{Name: "m", Spec: models.MonitorSpec{Hooks: []string{"a", "a"}}},
		{Name: "c", Spec: models.CounterSpec{Increasers: []string{"x", "x"}, Decreasers: []string{}}},
	}

	table, rejected := Build(context.Background(), probes, matchers.NewMatcher())

	require.Empty(t, rejected)
	assert.Equal(t, []string{"m"}, table.Monitors("a"))
	assert.Equal(t, []string{"c"}, table.Increasers("x"))
}

func TestBuild_ContentTables(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	active := map[string]any{"equals": map[string]any{"status": "active"}}
	watcher := &models.Probe{Name: "w", Spec: models.WatcherSpec{
		Target: models.Target{Index: "idx", Collection: "users", Filter: active},
	}}
	sameFilterWatcher := &models.Probe{Name: "w2", Spec: models.WatcherSpec{
		Target: models.Target{Index: "idx", Collection: "users", Filter: active},
	}}
	sampler := &models.Probe{Name: "s", Interval: time.Second, Spec: models.SamplerSpec{
		Target:     models.Target{Index: "idx", Collection: "users", Filter: map[string]any{}},
		Collects:   models.Collects{Mode: models.CollectAll},
		SampleSize: 5,
	}}

	matcher := matchers.NewMatcher()
	table, rejected := Build(ctx, []*models.Probe{watcher, sameFilterWatcher, sampler}, matcher)
	require.Empty(t, rejected)

	matched, err := matcher.Test(ctx, "idx", "users", "", map[string]any{"status": "active"})
	require.NoError(t, err)
	require.Len(t, matched, 2)

	assert.Equal(t, []string{"w", "w2"}, table.Watchers(matched[0]))
	assert.Empty(t, table.Samplers(matched[0]))
	assert.Equal(t, []*models.Probe{sampler}, table.Samplers(matched[1]))
	assert.Empty(t, table.Watchers(matched[1]))
}

func TestBuild_RegistersEachContentProbeOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)

	filter := map[string]any{"exists": "a"}
	probes := []*models.Probe{
		{Name: "w", Spec: models.WatcherSpec{Target: models.Target{Index: "i", Collection: "c", Filter: filter}}},
		{Name: "s", Interval: time.Second, Spec: models.SamplerSpec{Target: models.Target{Index: "i", Collection: "d", Filter: filter}, SampleSize: 1}},
		{Name: "m", Spec: models.MonitorSpec{Hooks: []string{"a"}}},
	}

	gomock.InOrder(
		matcher.EXPECT().Register(gomock.Any(), "i", "c", filter).Return("f-w", nil).Times(1),
		matcher.EXPECT().Register(gomock.Any(), "i", "d", filter).Return("f-s", nil).Times(1),
	)

	table, rejected := Build(context.Background(), probes, matcher)

	require.Empty(t, rejected)
	assert.Equal(t, []string{"w"}, table.Watchers("f-w"))
	assert.Equal(t, "s", table.Samplers("f-s")[0].Name)
}

func TestBuild_DropsProbesWhoseFilterIsRejected(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)

	registerErr := errors.New("matcher unavailable")
	probes := []*models.Probe{
		{Name: "broken", Spec: models.WatcherSpec{Target: models.Target{Index: "i", Collection: "c", Filter: map[string]any{"bogus": 1}}}},
		{Name: "ok", Spec: models.WatcherSpec{Target: models.Target{Index: "i", Collection: "c", Filter: map[string]any{}}}},
	}

	matcher.EXPECT().Register(gomock.Any(), "i", "c", map[string]any{"bogus": 1}).Return("", registerErr)
	matcher.EXPECT().Register(gomock.Any(), "i", "c", map[string]any{}).Return("f-ok", nil)

	table, rejected := Build(context.Background(), probes, matcher)

	require.Len(t, rejected, 1)
	assert.ErrorIs(t, rejected[0], registerErr)
	assert.Equal(t, "RTE_1000", svcerrors.CodeOf(rejected[0]))
	assert.Contains(t, rejected[0].Error(), `"broken"`)
	assert.Equal(t, []string{"ok"}, names(table.Active()))
	assert.Equal(t, []string{"ok"}, table.Watchers("f-ok"))
}

func TestBuild_InvalidFilterWithRealMatcher(t *testing.T) {
	t.Parallel()

	probes := []*models.Probe{
		{Name: "broken", Spec: models.WatcherSpec{Target: models.Target{Index: "i", Collection: "c", Filter: map[string]any{"bogus": 1}}}},
	}

	table, rejected := Build(context.Background(), probes, matchers.NewMatcher())

	require.Len(t, rejected, 1)
	assert.ErrorIs(t, rejected[0], matchers.ErrInvalidFilter)
	assert.Empty(t, table.Active())
}
