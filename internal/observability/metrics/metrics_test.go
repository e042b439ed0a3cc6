package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

func TestDocumentMetricsCountsByStatus(t *testing.T) {
	m := NewDocumentMetrics("worker", prometheus.NewRegistry())

	outcomes := []domain.DocumentOutcome{
		{Family: "aius", Recorded: true, Fields: domain.ExtractedFields{Author: "Иванов И.И.", Discipline: "Сети", Hours: 72}},
		{Family: "pioa", Recorded: true, Fields: domain.ExtractedFields{Discipline: "Сети"}},
		{Family: "tsau"},
		{Family: "default", Error: "open document: locked"},
	}
	for _, outcome := range outcomes {
		m.StartDocument()
		m.FinishDocument(outcome, 10*time.Millisecond)
	}

	if got := testutil.ToFloat64(m.processTotal.WithLabelValues("worker", "aius", "recorded")); got != 1 {
		t.Fatalf("expected 1 recorded aius document, got %v", got)
	}
	if got := testutil.ToFloat64(m.processTotal.WithLabelValues("worker", "tsau", "skipped")); got != 1 {
		t.Fatalf("expected 1 skipped tsau document, got %v", got)
	}
	if got := testutil.ToFloat64(m.processTotal.WithLabelValues("worker", "default", "failed")); got != 1 {
		t.Fatalf("expected 1 failed default document, got %v", got)
	}
	if got := testutil.ToFloat64(m.fieldsMissing.WithLabelValues("worker", "pioa", "author")); got != 1 {
		t.Fatalf("expected missing author for pioa, got %v", got)
	}
	if got := testutil.ToFloat64(m.processInFlight); got != 0 {
		t.Fatalf("expected no documents in flight, got %v", got)
	}
}

func TestHTTPMiddlewareRecordsRequests(t *testing.T) {
	registry := NewRegistry()
	m := NewHTTPServerMetrics("api", registry)
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/documents", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/unknown/123", nil))

	if got := testutil.ToFloat64(m.requestTotal.WithLabelValues("api", http.MethodPost, "/v1/documents", "202")); got != 1 {
		t.Fatalf("expected 1 accepted request, got %v", got)
	}
	if got := testutil.ToFloat64(m.requestTotal.WithLabelValues("api", http.MethodGet, "other", "202")); got != 1 {
		t.Fatalf("expected unknown path folded into other, got %v", got)
	}

	rec := httptest.NewRecorder()
	Handler(registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "syllabus_http_requests_total") {
		t.Fatalf("expected exposition to include request counter")
	}
}
