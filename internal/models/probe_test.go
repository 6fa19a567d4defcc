package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeType_Valid(t *testing.T) {
	t.Parallel()

	for _, probeType := range []ProbeType{ProbeMonitor, ProbeCounter, ProbeWatcher, ProbeSampler} {
		assert.True(t, probeType.Valid(), string(probeType))
	}
	assert.False(t, ProbeType("gauge").Valid())
	assert.False(t, ProbeType("").Valid())
}

func TestProbe_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		probe *Probe
		want  string
	}{
		{
			name:  "immediate monitor",
			probe: &Probe{Name: "foo", Spec: MonitorSpec{Hooks: []string{"a:b"}}},
			want:  `{"name":"foo","type":"monitor","volatile":false,"interval":null,"hooks":["a:b"]}`,
		},
		{
			name: "interval counter",
			probe: &Probe{Name: "c", Interval: time.Second, Volatile: true,
				Spec: CounterSpec{Increasers: []string{"x"}, Decreasers: []string{"y"}}},
			want: `{"name":"c","type":"counter","volatile":true,"interval":1000,"increasers":["x"],"decreasers":["y"]}`,
		},
		{
			name: "sampler with fields",
			probe: &Probe{Name: "s", Interval: time.Minute, Spec: SamplerSpec{
				Target:     Target{Index: "i", Collection: "c", Filter: map[string]any{}},
				Collects:   Collects{Mode: CollectFields, Fields: []string{"foo.bar"}},
				SampleSize: 5,
			}},
			want: `{"name":"s","type":"sampler","volatile":false,"interval":60000,"index":"i","collection":"c","filter":{},"collects":["foo.bar"],"sampleSize":5}`,
		},
		{
			name: "watcher counting only",
			probe: &Probe{Name: "w", Spec: WatcherSpec{
				Target: Target{Index: "i", Collection: "c", Filter: map[string]any{}},
			}},
			want: `{"name":"w","type":"watcher","volatile":false,"interval":null,"index":"i","collection":"c","filter":{},"collects":null}`,
		},
		{
			name: "watcher wildcard",
			probe: &Probe{Name: "w", Spec: WatcherSpec{
				Target:   Target{Index: "i", Collection: "c", Filter: map[string]any{}},
				Collects: Collects{Mode: CollectAll},
			}},
			want: `{"name":"w","type":"watcher","volatile":false,"interval":null,"index":"i","collection":"c","filter":{},"collects":"*"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := json.Marshal(tt.probe)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}
