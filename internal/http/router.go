package http

import (
	"net/http"

	"probe-metrics/internal/aggregators"
	"probe-metrics/internal/ingestors"
	"probe-metrics/internal/notifiers"
	"probe-metrics/internal/shared/loggers"
	"probe-metrics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(ingestionService ingestors.IngestionService, inspector aggregators.Inspector, hub notifiers.Hub, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	router.Post("/events", errorHandlingAdapter(NewIngestEventsHandler(ingestionService)))
	router.Post("/documents/{index}/{collection}", errorHandlingAdapter(NewIngestDocumentsHandler(ingestionService)))
	router.Get("/probes", errorHandlingAdapter(NewListProbesHandler(inspector)))
	router.Get("/probes/{name}/measure", errorHandlingAdapter(NewProbeMeasureHandler(inspector)))
	router.Method(http.MethodGet, "/measures/stream", NewMeasureStreamHandler(hub))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
