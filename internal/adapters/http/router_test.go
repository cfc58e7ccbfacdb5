package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/unp-digital/sciencebot/internal/core/domain"
	"github.com/unp-digital/sciencebot/internal/observability/metrics"
)

type stubSearch struct {
	result    domain.PipelineResult
	gotQuery  string
	gotSchool domain.School
}

func (s *stubSearch) SearchAndAnswer(_ context.Context, query string, school domain.School, _ int) domain.PipelineResult {
	s.gotQuery = query
	s.gotSchool = school
	return s.result
}

type stubChat struct {
	reply string
	err   error
}

func (s *stubChat) ProcessMessage(context.Context, string, string, domain.School) (string, error) {
	return s.reply, s.err
}

func newTestHandler(search *stubSearch, chat *stubChat) http.Handler {
	router := NewRouter(search, chat, metrics.NewHTTPServerMetrics("test"), RouterConfig{
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxInFlight:    16,
	})
	return router.Handler()
}

func TestSearchEndpoint(t *testing.T) {
	search := &stubSearch{result: domain.PipelineResult{
		Success:      true,
		Message:      "Topología General tiene 4 créditos.",
		DocumentUsed: "Plan de Estudios 2023",
		PagesCount:   5,
	}}
	handler := newTestHandler(search, &stubChat{})

	body := `{"query": "¿Cuántos créditos tiene Topología General?", "school": "Ingeniería Informática", "max_pages": 5}`
	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result domain.PipelineResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.Success || result.DocumentUsed != "Plan de Estudios 2023" || result.PagesCount != 5 {
		t.Errorf("result = %+v", result)
	}
	if search.gotSchool != domain.SchoolInformatica {
		t.Errorf("school = %q", search.gotSchool)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestSearchEndpointValidation(t *testing.T) {
	handler := newTestHandler(&stubSearch{}, &stubChat{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"missing query", `{"school": "Economía"}`, http.StatusBadRequest},
		{"unknown school", `{"query": "q", "school": "Astrología"}`, http.StatusBadRequest},
		{"general bucket rejected", `{"query": "q", "school": "Información General"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestSearchEndpointMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(&stubSearch{}, &stubChat{})

	req := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestChatEndpoint(t *testing.T) {
	handler := newTestHandler(&stubSearch{}, &stubChat{reply: "hola"})

	body := `{"user_id": "wa-123", "school": "Economía", "message": "hola"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["message"] != "hola" {
		t.Errorf("message = %q", resp["message"])
	}
}

func TestChatEndpointErrorMapping(t *testing.T) {
	chatErr := domain.WrapError(domain.ErrInvalidInput, "process message", domain.ErrInvalidInput)
	handler := newTestHandler(&stubSearch{}, &stubChat{err: chatErr})

	body := `{"user_id": "wa-123", "school": "Economía", "message": ""}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(&stubSearch{}, &stubChat{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(&stubSearch{}, &stubChat{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.WrapError(domain.ErrInvalidSchool, "parse", domain.ErrInvalidSchool), http.StatusBadRequest},
		{domain.WrapError(domain.ErrTimeout, "search", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{domain.WrapError(domain.ErrTemporary, "search", domain.ErrTemporary), http.StatusServiceUnavailable},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := mapErrorToHTTPStatus(tt.err); got != tt.want {
			t.Errorf("mapErrorToHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
