package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/syllabus-stats/internal/config"
	"github.com/kirillkom/syllabus-stats/internal/core/ports"
	"github.com/kirillkom/syllabus-stats/internal/observability/metrics"
)

const (
	maxRequestBody   = 1 << 20
	backpressureWait = 2 * time.Second
)

type Dependencies struct {
	Processor ports.DocumentProcessor
	Batches   ports.BatchProcessor
	Stats     ports.StatisticsReader
	// Discover expands directories in a batch request into document paths.
	Discover func(paths []string) ([]string, error)

	Metrics        *metrics.HTTPServerMetrics
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

type Router struct {
	cfg  config.Config
	deps Dependencies
}

func NewRouter(cfg config.Config, deps Dependencies) *Router {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Discover == nil {
		deps.Discover = func(paths []string) ([]string, error) { return paths, nil }
	}
	return &Router{cfg: cfg, deps: deps}
}

func (rt *Router) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /v1/stats", rt.getStats)
	api.HandleFunc("POST /v1/documents", rt.processDocument)
	api.HandleFunc("POST /v1/batches", rt.runBatch)

	var onLimited func()
	if rt.deps.Metrics != nil {
		onLimited = rt.deps.Metrics.RecordRateLimited
	}
	limited := rateLimitMiddleware(
		backpressureMiddleware(api, rt.cfg.APIMaxInFlight, backpressureWait),
		rt.cfg.APIRateLimitRPS,
		rt.cfg.APIRateLimitBurst,
		onLimited,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.deps.MetricsHandler != nil {
		mux.Handle("GET /metrics", rt.deps.MetricsHandler)
	}
	mux.Handle("/v1/", limited)

	var handler http.Handler = mux
	if rt.deps.Metrics != nil {
		handler = rt.deps.Metrics.Middleware(handler)
	}
	return requestIDMiddleware(accessLogMiddleware(rt.deps.Logger, handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) getStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.deps.Stats.Snapshot())
}

func (rt *Router) processDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	path := strings.TrimSpace(req.Path)
	if path == "" {
		writeError(w, r, http.StatusBadRequest, "path is required")
		return
	}

	outcome := rt.deps.Processor.ProcessDocument(r.Context(), path)
	if outcome.Failed() {
		writeJSON(w, mapErrorToHTTPStatus(outcome.Err), outcome)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (rt *Router) runBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Paths []string `json:"paths"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Paths) == 0 {
		writeError(w, r, http.StatusBadRequest, "paths are required")
		return
	}

	paths, err := rt.deps.Discover(req.Paths)
	if err != nil {
		writeError(w, r, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rt.deps.Batches.Run(r.Context(), paths))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid json")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":      message,
		"request_id": requestIDFromContext(r.Context()),
	})
}
