package events

import "probe-metrics/internal/models"

// EventMeasure is the notification emitted after every successful flush.
const EventMeasure = "probe:measure"

// MeasureEvent is the payload of EventMeasure. Measure is a deep copy of the
// flushed accumulator, timestamp included.
type MeasureEvent struct {
	Probe   string           `json:"probe"`
	Type    models.ProbeType `json:"type"`
	Measure map[string]any   `json:"measure"`
}

func NewMeasureEvent(measure models.Measure) MeasureEvent {
	return MeasureEvent{Probe: measure.Probe, Type: measure.Type, Measure: measure.Payload()}
}
