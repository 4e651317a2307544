package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/consilium-ai/consilium/internal/models"
	"github.com/consilium-ai/consilium/internal/orchestration"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0"

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	orch  *orchestration.Orchestrator
	store RunStore
}

// NewHandlers creates a new Handlers over the orchestrator and store.
func NewHandlers(orch *orchestration.Orchestrator, store RunStore) *Handlers {
	return &Handlers{orch: orch, store: store}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleStatus reports the configured agents and active decision weights.
func (h *Handlers) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:  "ok",
		Version: Version,
		Agents:  h.orch.Registry().Status(),
		Weights: h.orch.Engine().Weights(),
	})
}

// HandleAnalyze runs one scenario across all pillars and returns the
// synthesized recommendation.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	run, rec, err := h.orch.Analyze(r.Context(), req)
	if err != nil {
		writeAnalyzeError(w, err)
		return
	}

	if err := h.store.SaveRun(&StoredRun{Run: run, Recommendation: rec}); err != nil {
		writeError(w, http.StatusInternalServerError, "persisting run: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		RunID:          run.RunID,
		Run:            run,
		Recommendation: rec,
	})
}

// HandleAnalyzeStream runs one scenario with Server-Sent Events progress.
// Pillars execute in dispatch order; each emits a started and a terminal
// event, and the final event carries the run and recommendation.
func (h *Handlers) HandleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	var req models.ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	events, err := h.orch.RunWithUpdates(r.Context(), req)
	if err != nil {
		writeAnalyzeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data)
		flusher.Flush()

		if ev.Kind == orchestration.EventRunCompleted && ev.Run != nil {
			// Persistence failures don't interrupt the stream; the client
			// already has the full result.
			_ = h.store.SaveRun(&StoredRun{Run: ev.Run, Recommendation: ev.Recommendation})
		}
	}
}

// HandleRuns returns a list of all runs, with optional sort/order query params.
func (h *Handlers) HandleRuns(w http.ResponseWriter, r *http.Request) {
	sortField := r.URL.Query().Get("sort")
	order := r.URL.Query().Get("order")

	runs, err := h.store.ListRuns(sortField, order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// HandleSummary returns aggregate metrics across all runs.
func (h *Handlers) HandleSummary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.store.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleRunDetail returns full run detail with per-pillar results.
func (h *Handlers) HandleRunDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		// Fallback: extract from URL path for compatibility.
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/runs/"), "/")
		if len(parts) > 0 {
			id = parts[0]
		}
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "run id is required")
		return
	}

	detail, err := h.store.GetRun(id)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// writeAnalyzeError maps orchestrator rejections to status codes: config
// errors are the client's fault, an empty agent set means the service
// cannot do any work right now, everything else is ours.
func writeAnalyzeError(w http.ResponseWriter, err error) {
	var cfgErr *models.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		writeError(w, http.StatusBadRequest, cfgErr.Error())
	case errors.Is(err, orchestration.ErrNoAgents):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, orch *orchestration.Orchestrator, store RunStore) {
	h := NewHandlers(orch, store)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/status", h.HandleStatus)
	mux.HandleFunc("POST /api/analyze", h.HandleAnalyze)
	mux.HandleFunc("POST /api/analyze/stream", h.HandleAnalyzeStream)
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
	mux.HandleFunc("GET /api/runs", h.HandleRuns)
	mux.HandleFunc("GET /api/runs/{id}", h.HandleRunDetail)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
