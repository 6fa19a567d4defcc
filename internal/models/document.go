package models

// Document is a content item watched by watcher and sampler probes. ID is
// empty for documents without an identifier.
type Document struct {
	Index      string         `json:"index"`
	Collection string         `json:"collection"`
	ID         string         `json:"id,omitempty"`
	Body       map[string]any `json:"body"`
}
