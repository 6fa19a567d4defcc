package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	aggregatormocks "probe-metrics/internal/aggregators/mocks"
	"probe-metrics/internal/ingestors"
	ingestormocks "probe-metrics/internal/ingestors/mocks"
	"probe-metrics/internal/models"
	"probe-metrics/internal/notifiers"
	"probe-metrics/internal/shared/loggers"
	"probe-metrics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routerFixture struct {
	router           http.Handler
	ingestionService *ingestormocks.MockIngestionService
	inspector        *aggregatormocks.MockInspector
}

func newRouterFixture(t *testing.T) routerFixture {
	ctrl := gomock.NewController(t)
	ingestionService := ingestormocks.NewMockIngestionService(ctrl)
	inspector := aggregatormocks.NewMockInspector(ctrl)
	return routerFixture{
		router:           NewRouter(ingestionService, inspector, notifiers.NewHub(), loggers.Nop()),
		ingestionService: ingestionService,
		inspector:        inspector,
	}
}

func (f routerFixture) serve(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestIngestEventsHandler_Accepted(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.ingestionService.EXPECT().
		IngestEvents(gomock.Any(), "req-1", gomock.Any()).
		Return(&ingestors.IngestResult{BatchID: "req-1", Accepted: 2}, nil)

	rr := f.serve(http.MethodPost, "/events", `{"events":["a","b"]}`, map[string]string{headerRequestID: "req-1"})

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.JSONEq(t, `{"batchId":"req-1","accepted":2}`, rr.Body.String())
}

func TestIngestEventsHandler_ValidationError(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.ingestionService.EXPECT().
		IngestEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, svcerrors.NewInvalidArgumentError("ING_1000", "events cannot be empty", nil))

	rr := f.serve(http.MethodPost, "/events", `{"events":[]}`, map[string]string{headerRequestID: "req-2"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
	assert.Equal(t, ErrorResponse{
		RequestID:        "req-2",
		ErrorCategory:    "invalid_argument",
		ErrorCode:        "ING_1000",
		ErrorDescription: "events cannot be empty",
	}, errorResponse)
}

func TestIngestDocumentsHandler_PassesLocation(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.ingestionService.EXPECT().
		IngestDocuments(gomock.Any(), gomock.Any(), "shop", "orders", gomock.Any()).
		Return(&ingestors.IngestResult{BatchID: "b", Accepted: 1}, nil)

	rr := f.serve(http.MethodPost, "/documents/shop/orders", `[{"body":{}}]`, nil)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.JSONEq(t, `{"batchId":"b","accepted":1}`, rr.Body.String())
}

func TestListProbesHandler(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.inspector.EXPECT().Probes().Return([]*models.Probe{
		{Name: "c", Interval: time.Second, Spec: models.CounterSpec{Increasers: []string{"x"}, Decreasers: []string{"y"}}},
		{Name: "foo", Spec: models.MonitorSpec{Hooks: []string{"a:b"}}},
	})

	rr := f.serve(http.MethodGet, "/probes", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"probes":[
		{"name":"c","type":"counter","volatile":false,"interval":1000,"increasers":["x"],"decreasers":["y"]},
		{"name":"foo","type":"monitor","volatile":false,"interval":null,"hooks":["a:b"]}
	]}`, rr.Body.String())
}

func TestProbeMeasureHandler(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.inspector.EXPECT().Measure("foo").Return(&models.Measure{
		Probe:     "foo",
		Type:      models.ProbeMonitor,
		Timestamp: 1735689600000,
		Counts:    map[string]int64{"a:b": 4},
	}, nil)

	rr := f.serve(http.MethodGet, "/probes/foo/measure", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"probe":"foo","type":"monitor","measure":{"a:b":4,"timestamp":1735689600000}}`, rr.Body.String())
}

func TestProbeMeasureHandler_NotFound(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.inspector.EXPECT().Measure("missing").Return(nil, svcerrors.NewNotFoundError("AGG_1000", `probe "missing" not found`, nil))

	rr := f.serve(http.MethodGet, "/probes/missing/measure", "", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
	assert.Equal(t, "AGG_1000", errorResponse.ErrorCode)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rr := f.serve(http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
