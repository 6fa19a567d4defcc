package events

import (
	"testing"

	"probe-metrics/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEnvelope_PartitionKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "doc:create", Envelope{Kind: KindEvent, Event: "doc:create"}.PartitionKey())
	assert.Equal(t, "shop/orders", Envelope{
		Kind:     KindDocument,
		Document: &models.Document{Index: "shop", Collection: "orders", ID: "o-1"},
	}.PartitionKey())
}

func TestNewMeasureEvent_CopiesContent(t *testing.T) {
	t.Parallel()

	record := map[string]any{"name": "ada", "timestamp": int64(10)}
	measure := models.Measure{
		Probe:      "w",
		Type:       models.ProbeWatcher,
		Timestamp:  10,
		Counts:     map[string]int64{},
		HasContent: true,
		Content:    []map[string]any{record},
	}

	event := NewMeasureEvent(measure)
	record["name"] = "changed"

	assert.Equal(t, "w", event.Probe)
	assert.Equal(t, models.ProbeWatcher, event.Type)
	assert.Equal(t, map[string]any{
		"timestamp": int64(10),
		"content":   []any{map[string]any{"name": "ada", "timestamp": int64(10)}},
	}, event.Measure)
}
