package events

import "probe-metrics/internal/models"

type EnvelopeKind string

const (
	KindEvent    EnvelopeKind = "event"
	KindDocument EnvelopeKind = "document"
)

// Envelope is the message carried by the ingestion stream: either a named
// application event or a document to test against content probes.
//
// Example JSON:
//
//	{"kind": "event", "event": "doc:create", "requestId": "01ARZ3NDEKTSV4RRFFQ69G5FAV"}
//	{"kind": "document", "document": {"index": "shop", "collection": "orders", "id": "o-1", "body": {...}}}
type Envelope struct {
	Kind      EnvelopeKind     `json:"kind"`
	Event     string           `json:"event,omitempty"`
	Document  *models.Document `json:"document,omitempty"`
	RequestID string           `json:"requestId,omitempty"`
}

// PartitionKey routes documents of one collection, and occurrences of one
// event name, to the same partition so they are dispatched in order.
func (e Envelope) PartitionKey() string {
	if e.Kind == KindDocument && e.Document != nil {
		return e.Document.Index + "/" + e.Document.Collection
	}
	return e.Event
}
