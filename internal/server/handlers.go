package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/brillia/career-coach/internal/llm"
)

// minKeyLength is the shortest plausible provider key; anything shorter is
// reported as invalid by the diagnostic ping.
const minKeyLength = 10

// handleGenerate proxies one generation request to the provider. The client
// never sees the API key, only the generated text or an error message.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req llm.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prompt, ok := llm.PromptFromContents(req.Contents)

	// Diagnostic ping answers with the key status instead of generating.
	if ok && prompt == llm.PingAPIKeyStatus {
		s.jsonResponse(w, http.StatusOK, llm.GenerateResponse{Text: s.keyStatus()})
		return
	}

	if s.apiKey == "" || s.client == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Server configuration error. API key not found.")
		return
	}
	if req.Model == "" || !ok || prompt == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing model or contents in request body")
		return
	}

	genReq := llm.Request{Prompt: prompt}
	wantJSON := false
	if req.GenerationConfig != nil {
		genReq.SystemInstruction = req.GenerationConfig.SystemInstruction
		wantJSON = req.GenerationConfig.ResponseMIMEType == llm.MIMETypeJSON
	}

	var (
		text string
		err  error
	)
	if wantJSON {
		text, err = s.client.GenerateJSON(r.Context(), genReq)
	} else {
		text, err = s.client.GenerateContent(r.Context(), genReq)
	}
	if err != nil {
		s.log.Error().Err(err).Msg("generation failed")
		var quota *llm.QuotaError
		if errors.As(err, &quota) {
			s.errorResponse(w, http.StatusTooManyRequests, "The AI service quota has been exceeded. Please try again later.")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "An error occurred while processing your request on the server.")
		return
	}

	s.jsonResponse(w, http.StatusOK, llm.GenerateResponse{Text: text})
}

// keyStatus describes the server-side key without revealing it.
func (s *Server) keyStatus() string {
	switch {
	case len(s.apiKey) > minKeyLength:
		return fmt.Sprintf("Success: API key is configured on the server. Key length: %d.", len(s.apiKey))
	case s.apiKey != "":
		return "Error: API key found, but it appears to be too short or invalid."
	default:
		return "Error: API_KEY environment variable was not found on the server."
	}
}

// handleJobs looks up live job listings.
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title := q.Get("title")
	if title == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing title query parameter")
		return
	}
	country := q.Get("country")
	if country == "" {
		country = "us"
	}
	fetchLatest := q.Get("fetchLatest") == "true"

	listings, err := s.jobs.Search(r.Context(), title, country, q.Get("location"), fetchLatest)
	if err != nil {
		s.log.Error().Err(err).Msg("job search failed")
		s.errorResponse(w, http.StatusBadGateway, "The job search service is temporarily unavailable.")
		return
	}
	s.jsonResponse(w, http.StatusOK, listings)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, llm.ErrorResponse{Error: message})
}
