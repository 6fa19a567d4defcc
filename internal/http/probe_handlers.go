package http

import (
	"net/http"

	"probe-metrics/internal/aggregators"
	"probe-metrics/internal/events"

	"github.com/go-chi/chi/v5"
)

type listProbesHandler struct {
	inspector aggregators.Inspector
}

func NewListProbesHandler(inspector aggregators.Inspector) AppHttpHandler {
	return &listProbesHandler{inspector: inspector}
}

// Handle processes GET /probes requests.
func (h *listProbesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]any{"probes": h.inspector.Probes()})
	return nil
}

type probeMeasureHandler struct {
	inspector aggregators.Inspector
}

func NewProbeMeasureHandler(inspector aggregators.Inspector) AppHttpHandler {
	return &probeMeasureHandler{inspector: inspector}
}

// Handle processes GET /probes/{name}/measure requests. The response has the
// shape of the measure notification but the accumulator is not flushed.
func (h *probeMeasureHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	measure, svcErr := h.inspector.Measure(chi.URLParam(r, "name"))
	if svcErr != nil {
		return svcErr
	}

	writeJSON(w, http.StatusOK, events.NewMeasureEvent(*measure))
	return nil
}
