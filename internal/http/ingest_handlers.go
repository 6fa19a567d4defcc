package http

import (
	"net/http"

	"probe-metrics/internal/ingestors"

	"github.com/go-chi/chi/v5"
)

type ingestEventsHandler struct {
	ingestionService ingestors.IngestionService
}

func NewIngestEventsHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &ingestEventsHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /events requests. The request id doubles as the
// batch id so consumer logs can be joined with the request log.
func (h *ingestEventsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.ingestionService.IngestEvents(r.Context(), requestID(r), r.Body)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusAccepted, result)
	return nil
}

type ingestDocumentsHandler struct {
	ingestionService ingestors.IngestionService
}

func NewIngestDocumentsHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &ingestDocumentsHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /documents/{index}/{collection} requests.
func (h *ingestDocumentsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	index := chi.URLParam(r, "index")
	collection := chi.URLParam(r, "collection")
	result, err := h.ingestionService.IngestDocuments(r.Context(), requestID(r), index, collection, r.Body)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusAccepted, result)
	return nil
}
