package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/unp-digital/sciencebot/internal/core/domain"
	"github.com/unp-digital/sciencebot/internal/core/ports"
	"github.com/unp-digital/sciencebot/internal/observability/metrics"
)

const serviceName = "sciencebot-api"

type Router struct {
	search  ports.DocumentSearchService
	chat    ports.ChatService
	metrics *metrics.HTTPServerMetrics

	rateLimitRPS   float64
	rateLimitBurst int
	maxInFlight    int
}

type RouterConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
}

func NewRouter(
	search ports.DocumentSearchService,
	chat ports.ChatService,
	serverMetrics *metrics.HTTPServerMetrics,
	cfg RouterConfig,
) *Router {
	return &Router{
		search:         search,
		chat:           chat,
		metrics:        serverMetrics,
		rateLimitRPS:   cfg.RateLimitRPS,
		rateLimitBurst: cfg.RateLimitBurst,
		maxInFlight:    cfg.MaxInFlight,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/search", rt.searchAndAnswer)
	mux.HandleFunc("/v1/chat", rt.processChatMessage)
	mux.Handle("/metrics", rt.metrics.Handler())

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	handler = backpressureMiddleware(handler, rt.maxInFlight, 50*time.Millisecond)
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) searchAndAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Query    string `json:"query"`
		School   string `json:"school"`
		MaxPages int    `json:"max_pages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}

	school, err := domain.ParseSchool(req.School)
	if err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	result := rt.search.SearchAndAnswer(r.Context(), req.Query, school, req.MaxPages)
	rt.metrics.RecordPipelineRun(serviceName, result.Success, result.PagesCount, time.Since(start))

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) processChatMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		UserID  string `json:"user_id"`
		School  string `json:"school"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
		return
	}

	school, err := domain.ParseSchool(req.School)
	if err != nil {
		writeError(w, err)
		return
	}

	reply, err := rt.chat.ProcessMessage(r.Context(), req.UserID, req.Message, school)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": reply})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
