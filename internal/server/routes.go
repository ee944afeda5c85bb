package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jackzampolin/coursecal/internal/ics"
	"github.com/jackzampolin/coursecal/internal/preprocess"
	"github.com/jackzampolin/coursecal/internal/textdoc"
	"github.com/jackzampolin/coursecal/internal/types"
)

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/parse/status", s.handleStatus)
	mux.HandleFunc("POST /api/parse", s.handleParseLLM)
	mux.HandleFunc("POST /api/parse/pattern", s.handleParsePattern)
	mux.HandleFunc("POST /api/parse/compare", s.handleCompare)
	mux.HandleFunc("POST /api/export/ics", s.handleExportICS)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
}

// apiResponse is the uniform response envelope.
type apiResponse struct {
	Success  bool   `json:"success"`
	Data     any    `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message,omitempty"`
	Metadata any    `json:"metadata,omitempty"`
}

// parseRequest is the request body for the parse endpoints.
type parseRequest struct {
	Text       string `json:"text"`
	CourseName string `json:"courseName,omitempty"`
	CourseCode string `json:"courseCode,omitempty"`
	Semester   string `json:"semester,omitempty"`
	Year       int    `json:"year,omitempty"`
	// Engine selects the extractor for ICS export: "llm" or "pattern".
	Engine string `json:"engine,omitempty"`
}

func (r parseRequest) hint() types.CourseHint {
	return types.CourseHint{
		Name:     r.CourseName,
		Code:     r.CourseCode,
		Semester: r.Semester,
		Year:     r.Year,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := s.orchestrator.Status()
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data: map[string]any{
			"llm":     status,
			"pattern": map[string]bool{"available": true},
			"environment": map[string]any{
				"enableLLM":   s.cfg.LLM.Enabled,
				"model":       s.cfg.LLM.Model,
				"maxTokens":   s.cfg.LLM.MaxTokens,
				"temperature": s.cfg.LLM.Temperature,
			},
		},
		Message: "Parsing service status",
	})
}

func (s *Server) handleParseLLM(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeParseRequest(w, r)
	if !ok {
		return
	}

	result := s.orchestrator.ExtractLLM(r.Context(), req.Text, req.hint())
	s.writeExtractionResult(w, result)
}

func (s *Server) handleParsePattern(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeParseRequest(w, r)
	if !ok {
		return
	}

	result := s.orchestrator.ExtractPattern(r.Context(), req.Text, req.hint())
	s.writeExtractionResult(w, result)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeParseRequest(w, r)
	if !ok {
		return
	}

	comparison := s.orchestrator.Compare(r.Context(), req.Text, req.hint())
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data:    comparison,
		Message: "Comparison completed",
	})
}

func (s *Server) handleExportICS(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeParseRequest(w, r)
	if !ok {
		return
	}

	var result types.ExtractionResult
	if req.Engine == string(types.MethodPattern) {
		result = s.orchestrator.ExtractPattern(r.Context(), req.Text, req.hint())
	} else {
		result = s.orchestrator.ExtractLLM(r.Context(), req.Text, req.hint())
	}
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Error:   result.Error,
		})
		return
	}

	doc, err := ics.Export(result.Data)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Error:   fmt.Sprintf("ICS export failed: %v", err),
		})
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="syllabus.ics"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, doc)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{
			Success: false,
			Error:   "failed to read request body",
		})
		return
	}

	doc, err := textdoc.Decode(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data: map[string]any{
			"text":           doc.Text,
			"encoding":       doc.Encoding,
			"size":           doc.Size,
			"likelySyllabus": preprocess.IsLikelySyllabus(doc.Text),
		},
		Message: "Document decoded",
	})
}

// decodeParseRequest parses and validates the common request body.
func (s *Server) decodeParseRequest(w http.ResponseWriter, r *http.Request) (parseRequest, bool) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{
			Success: false,
			Error:   "invalid JSON request body",
		})
		return req, false
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, apiResponse{
			Success: false,
			Error:   "Text content is required",
		})
		return req, false
	}
	return req, true
}

// writeExtractionResult maps an engine result onto the response envelope.
func (s *Server) writeExtractionResult(w http.ResponseWriter, result types.ExtractionResult) {
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, apiResponse{
			Success: false,
			Error:   result.Error,
		})
		return
	}

	eventCount := 0
	if result.Data != nil {
		eventCount = len(result.Data.Events)
	}
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data:    result.Data,
		Message: fmt.Sprintf("Successfully parsed syllabus (%s) - %d events found", result.Method, eventCount),
		Metadata: map[string]any{
			"confidence": result.Confidence,
			"method":     result.Method,
		},
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
