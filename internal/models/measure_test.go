package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasure_Record(t *testing.T) {
	t.Parallel()

	measure := Measure{
		Probe:     "foo",
		Type:      ProbeMonitor,
		Timestamp: 1700000000000,
		Counts:    map[string]int64{"a:b": 1, "c:d": 0},
	}

	assert.Equal(t, map[string]any{
		"a:b":       int64(1),
		"c:d":       int64(0),
		"timestamp": int64(1700000000000),
	}, measure.Record())
}

func TestMeasure_Payload_IncludesContentCopy(t *testing.T) {
	t.Parallel()

	record := map[string]any{"foo": map[string]any{"bar": "bar"}, "timestamp": int64(1)}
	measure := Measure{
		Probe:      "sampler",
		Type:       ProbeSampler,
		Timestamp:  1,
		Counts:     map[string]int64{"count": 3},
		HasContent: true,
		Content:    []map[string]any{record},
	}

	payload := measure.Payload()
	assert.Equal(t, int64(3), payload["count"])
	assert.Equal(t, int64(1), payload["timestamp"])
	content, ok := payload["content"].([]any)
	if assert.True(t, ok) && assert.Len(t, content, 1) {
		content[0].(map[string]any)["foo"].(map[string]any)["bar"] = "changed"
	}
	assert.Equal(t, "bar", record["foo"].(map[string]any)["bar"], "payload must not share nested maps with the measure")
}

func TestMeasure_Payload_EmptyContentIsKept(t *testing.T) {
	t.Parallel()

	measure := Measure{Type: ProbeWatcher, HasContent: true, Content: nil}

	assert.Equal(t, []any{}, measure.Payload()["content"])
}
