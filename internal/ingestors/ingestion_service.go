package ingestors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"probe-metrics/internal/events"
	"probe-metrics/internal/models"
	"probe-metrics/internal/shared/loggers"
	"probe-metrics/internal/shared/metrics"
	"probe-metrics/internal/shared/svcerrors"
	"probe-metrics/internal/shared/ulid"
	"probe-metrics/internal/streams"
)

const (
	maxBatchBytes    = 1024 * 1024
	maxEventNameLen  = 256
	maxDocumentIDLen = 512
	maxLocationLen   = 255
)

// IngestResult represents the result of a batch ingestion operation.
type IngestResult struct {
	BatchID  string `json:"batchId"`
	Accepted int    `json:"accepted"`
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestEvents publishes a batch of named events. The body is a JSON
	// object {"events": ["doc:create", ...]}.
	IngestEvents(ctx context.Context, batchID string, r io.Reader) (*IngestResult, error)
	// IngestDocuments publishes a batch of documents of one collection. The
	// body is a JSON array of {"id": "optional", "body": {...}}.
	IngestDocuments(ctx context.Context, batchID, index, collection string, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	envelopeProducer streams.EnvelopeProducer
}

func NewIngestionService(envelopeProducer streams.EnvelopeProducer) IngestionService {
	return &ingestionService{
		envelopeProducer: envelopeProducer,
	}
}

type eventBatch struct {
	Events []any `json:"events"`
}

type documentItem struct {
	ID   any `json:"id"`
	Body any `json:"body"`
}

func (s *ingestionService) IngestEvents(ctx context.Context, batchID string, r io.Reader) (*IngestResult, error) {
	kind := string(events.KindEvent)
	names, err := s.validateEventBatch(r)
	if err != nil {
		return nil, s.failed(kind, err)
	}

	batchID = normalizeBatchID(batchID)
	loggers.Ctx(ctx).Debug().Msgf("started ingesting %d events, batch ID: %s", len(names), batchID)

	for _, name := range names {
		envelope := events.Envelope{Kind: events.KindEvent, Event: name, RequestID: batchID}
		if err := s.envelopeProducer.Produce(ctx, envelope); err != nil {
			return nil, s.failed(kind, errInternalEnvelopeProducerFailed(err))
		}
		metricItemsIngestedTotal.WithLabelValues(kind).Inc()
	}

	metricBatchIngestedTotal.WithLabelValues(kind, metrics.ValueNoError).Inc()
	return &IngestResult{BatchID: batchID, Accepted: len(names)}, nil
}

func (s *ingestionService) IngestDocuments(ctx context.Context, batchID, index, collection string, r io.Reader) (*IngestResult, error) {
	kind := string(events.KindDocument)
	docs, err := s.validateDocumentBatch(index, collection, r)
	if err != nil {
		return nil, s.failed(kind, err)
	}

	batchID = normalizeBatchID(batchID)
	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldIndex, index).
		Str(loggers.FieldCollection, collection).
		Msgf("started ingesting %d documents, batch ID: %s", len(docs), batchID)

	for _, doc := range docs {
		envelope := events.Envelope{Kind: events.KindDocument, Document: doc, RequestID: batchID}
		if err := s.envelopeProducer.Produce(ctx, envelope); err != nil {
			return nil, s.failed(kind, errInternalEnvelopeProducerFailed(err))
		}
		metricItemsIngestedTotal.WithLabelValues(kind).Inc()
	}

	metricBatchIngestedTotal.WithLabelValues(kind, metrics.ValueNoError).Inc()
	return &IngestResult{BatchID: batchID, Accepted: len(docs)}, nil
}

func (s *ingestionService) failed(kind string, err error) error {
	metricBatchIngestedTotal.WithLabelValues(kind, svcerrors.CodeOf(err)).Inc()
	return err
}

func (s *ingestionService) validateEventBatch(r io.Reader) ([]string, error) {
	buf, err := s.readBody(r)
	if err != nil {
		return nil, err
	}

	var batch eventBatch
	if err := decodeJSON(buf, &batch); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}
	if len(batch.Events) == 0 {
		return nil, errValidationFailed("events cannot be empty", nil)
	}

	names := make([]string, 0, len(batch.Events))
	for i, item := range batch.Events {
		name, ok := item.(string)
		if !ok {
			return nil, errValidationFailed(fmt.Sprintf("event at index %d: must be a string", i), nil)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errValidationFailed(fmt.Sprintf("event at index %d: name is required", i), nil)
		}
		if len(name) > maxEventNameLen {
			return nil, errValidationFailed(fmt.Sprintf("event at index %d: name too long: max %d characters", i, maxEventNameLen), nil)
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *ingestionService) validateDocumentBatch(index, collection string, r io.Reader) ([]*models.Document, error) {
	index = strings.TrimSpace(index)
	collection = strings.TrimSpace(collection)
	if index == "" || collection == "" {
		return nil, errValidationFailed("index and collection are required", nil)
	}
	if len(index) > maxLocationLen || len(collection) > maxLocationLen {
		return nil, errValidationFailed(fmt.Sprintf("index and collection: max %d characters", maxLocationLen), nil)
	}

	buf, err := s.readBody(r)
	if err != nil {
		return nil, err
	}

	var items []documentItem
	if err := decodeJSON(buf, &items); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}
	if len(items) == 0 {
		return nil, errValidationFailed("documents cannot be empty", nil)
	}

	docs := make([]*models.Document, 0, len(items))
	for i, item := range items {
		doc := &models.Document{Index: index, Collection: collection}
		switch id := item.ID.(type) {
		case nil:
		case string:
			if len(id) > maxDocumentIDLen {
				return nil, errValidationFailed(fmt.Sprintf("document at index %d: id too long: max %d characters", i, maxDocumentIDLen), nil)
			}
			doc.ID = id
		default:
			return nil, errValidationFailed(fmt.Sprintf("document at index %d: id must be a string", i), nil)
		}

		body, ok := item.Body.(map[string]any)
		if !ok {
			return nil, errValidationFailed(fmt.Sprintf("document at index %d: body must be a JSON object", i), nil)
		}
		doc.Body = body
		docs = append(docs, doc)
	}
	return docs, nil
}

// readBody reads at most maxBatchBytes from r.
func (s *ingestionService) readBody(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	buf, err := io.ReadAll(io.LimitReader(r, maxBatchBytes+1))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > maxBatchBytes {
		return nil, errValidationFailed("batch too large: must be <= 1MB", nil)
	}
	if len(bytes.TrimSpace(buf)) == 0 {
		return nil, errValidationFailed("empty request body", nil)
	}
	return buf, nil
}

// decodeJSON keeps numbers as json.Number so integer fields survive into
// collected content unchanged.
func decodeJSON(buf []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(buf))
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if decoder.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}

func normalizeBatchID(batchID string) string {
	batchID = strings.TrimSpace(batchID)
	if batchID == "" {
		return ulid.NewULID()
	}
	return batchID
}
