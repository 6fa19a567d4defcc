package models

import "probe-metrics/internal/shared/fieldpaths"

// Reserved keys of persisted measure records.
const (
	FieldTimestamp = "timestamp"
	FieldCount     = "count"
	FieldContent   = "content"
	FieldID        = "_id"
)

// Measure is a point-in-time copy of a probe accumulator, taken at flush.
// Counts holds the integer fields of the accumulator (hook counts for a
// monitor, "count" otherwise). Content holds collected records, each already
// stamped; HasContent distinguishes an empty list from no list at all.
type Measure struct {
	Probe      string
	Type       ProbeType
	Timestamp  int64
	Counts     map[string]int64
	HasContent bool
	Content    []map[string]any
}

// Record returns the single stored record for accumulators without content.
func (m Measure) Record() map[string]any {
	record := make(map[string]any, len(m.Counts)+1)
	for key, value := range m.Counts {
		record[key] = value
	}
	record[FieldTimestamp] = m.Timestamp
	return record
}

// Payload returns a deep copy shaped like the accumulator, for notifications.
func (m Measure) Payload() map[string]any {
	payload := m.Record()
	if m.HasContent {
		content := make([]any, len(m.Content))
		for i, record := range m.Content {
			content[i] = fieldpaths.CopyObject(record)
		}
		payload[FieldContent] = content
	}
	return payload
}
