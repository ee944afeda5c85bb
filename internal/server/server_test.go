package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackzampolin/coursecal/internal/config"
	"github.com/jackzampolin/coursecal/internal/extract"
	"github.com/jackzampolin/coursecal/internal/providers"
)

const testEnvelope = `{
	"assignments": [{"title": "Brief Due", "due_date": "2025-03-14"}],
	"exams": [],
	"activities": [],
	"confidence_score": 90
}`

func newTestServer(t *testing.T, mock *providers.MockClient, llmEnabled bool) *Server {
	t.Helper()

	llm := extract.NewLLMExtractor(mock, llmEnabled, nil)
	pattern := extract.NewPatternExtractor(nil)
	orch := extract.NewOrchestrator(llm, pattern, nil)

	srv, err := New(Config{
		Orchestrator: orch,
		App:          *config.DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, providers.NewMockClient(testEnvelope), true)

	rec := doJSON(t, srv, "GET", "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestStatus(t *testing.T) {
	srv := newTestServer(t, providers.NewMockClient(testEnvelope), true)

	rec := doJSON(t, srv, "GET", "/api/parse/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("expected success")
	}

	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T", resp.Data)
	}
	llm, ok := data["llm"].(map[string]any)
	if !ok || llm["available"] != true {
		t.Errorf("llm status = %v", data["llm"])
	}
}

func TestParseLLM(t *testing.T) {
	mock := providers.NewMockClient(testEnvelope)
	srv := newTestServer(t, mock, true)

	rec := doJSON(t, srv, "POST", "/api/parse", map[string]any{
		"text":       "Contracts syllabus. Brief due March 14.",
		"courseName": "Contracts",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("error = %s", resp.Error)
	}
	if !strings.Contains(resp.Message, "1 events found") {
		t.Errorf("message = %q", resp.Message)
	}
	if mock.CallCount() != 1 {
		t.Errorf("client calls = %d, want 1", mock.CallCount())
	}

	meta, ok := resp.Metadata.(map[string]any)
	if !ok {
		t.Fatalf("metadata = %T", resp.Metadata)
	}
	if meta["method"] != "llm" {
		t.Errorf("method = %v", meta["method"])
	}
	if meta["confidence"] != 90.0 {
		t.Errorf("confidence = %v", meta["confidence"])
	}
}

func TestParseLLMFailure(t *testing.T) {
	mock := providers.NewMockClient("not json at all")
	srv := newTestServer(t, mock, true)

	rec := doJSON(t, srv, "POST", "/api/parse", map[string]any{"text": "some text"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("expected failure envelope")
	}
	if resp.Error == "" {
		t.Error("expected error message")
	}
}

func TestParsePattern(t *testing.T) {
	srv := newTestServer(t, providers.NewMockClient(testEnvelope), true)

	rec := doJSON(t, srv, "POST", "/api/parse/pattern", map[string]any{
		"text": "LAW 501, Spring 2025\nMidterm exam 2025-03-10",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	meta := resp.Metadata.(map[string]any)
	if meta["method"] != "pattern" {
		t.Errorf("method = %v", meta["method"])
	}
}

func TestParseBadRequests(t *testing.T) {
	srv := newTestServer(t, providers.NewMockClient(testEnvelope), true)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"text": `},
		{"missing text", `{"courseName": "Contracts"}`},
		{"empty text", `{"text": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/parse", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.httpServer.Handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			resp := decodeResponse(t, rec)
			if resp.Success {
				t.Error("expected failure envelope")
			}
		})
	}
}

func TestCompare(t *testing.T) {
	mock := providers.NewMockClient("garbage response")
	srv := newTestServer(t, mock, true)

	rec := doJSON(t, srv, "POST", "/api/parse/compare", map[string]any{
		"text": "Midterm exam 2025-03-10\nBrief due 3/14/2025",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("error = %s", resp.Error)
	}

	// Comparison always returns 200 with both entries, even when one
	// engine failed.
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T", resp.Data)
	}
	llm := data["llm"].(map[string]any)
	if llm["success"] != false {
		t.Error("llm entry should record the failure")
	}
	pattern := data["pattern"].(map[string]any)
	if pattern["success"] != true {
		t.Error("pattern entry should succeed")
	}
}

func TestExportICS(t *testing.T) {
	srv := newTestServer(t, providers.NewMockClient(testEnvelope), true)

	rec := doJSON(t, srv, "POST", "/api/export/ics", map[string]any{
		"text":   "Midterm exam 2025-03-10",
		"engine": "pattern",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("body is not an ICS document: %s", rec.Body.String())
	}
}

func TestUpload(t *testing.T) {
	srv := newTestServer(t, providers.NewMockClient(testEnvelope), true)

	body := "Course Syllabus\nAssignments due weekly. Exam schedule follows.\nOffice hours by appointment. Grading policy attached."
	req := httptest.NewRequest("POST", "/api/upload", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	if data["encoding"] != "utf-8" {
		t.Errorf("encoding = %v", data["encoding"])
	}
	if data["likelySyllabus"] != true {
		t.Errorf("likelySyllabus = %v", data["likelySyllabus"])
	}
}

func TestUploadEmpty(t *testing.T) {
	srv := newTestServer(t, providers.NewMockClient(testEnvelope), true)

	req := httptest.NewRequest("POST", "/api/upload", strings.NewReader(""))
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, providers.NewMockClient(testEnvelope), true)

	req := httptest.NewRequest("OPTIONS", "/api/parse", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestServerRequiresOrchestrator(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error without orchestrator")
	}
}

func TestMaxBodyLimit(t *testing.T) {
	llm := extract.NewLLMExtractor(providers.NewMockClient(testEnvelope), true, nil)
	pattern := extract.NewPatternExtractor(nil)
	orch := extract.NewOrchestrator(llm, pattern, nil)

	srv, err := New(Config{Orchestrator: orch, MaxBodyBytes: 64})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	big := `{"text": "` + strings.Repeat("x", 200) + `"}`
	req := httptest.NewRequest("POST", "/api/parse", strings.NewReader(big))
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for oversized body", rec.Code)
	}
}

func TestServerStartStop(t *testing.T) {
	srv := newTestServer(t, providers.NewMockClient(testEnvelope), true)
	srv.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Start() error = %v", err)
	}
}
