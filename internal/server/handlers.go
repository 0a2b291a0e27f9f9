package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ppiankov/truthlens/internal/model"
)

type checkRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// errorResult is the response shape for unexpected internal failures.
// It carries enough of the AnalysisResult fields that a client renders
// it without special-casing.
type errorResult struct {
	Error         string              `json:"error"`
	Label         string              `json:"label"`
	Confidence    float64             `json:"confidence"`
	Keywords      []string            `json:"keywords"`
	Probabilities model.Probabilities `json:"probabilities"`
}

func (s *Server) handleCheckNews(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	input := req.Text
	if input == "" {
		input = req.URL
	}
	if input == "" {
		respondWithError(w, http.StatusBadRequest, "Text or URL is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Server.RequestTimeout)
	defer cancel()

	result, err := s.analyzer.Analyze(ctx, input)
	if err != nil {
		// Only content resolution can fail; no meaningful text exists
		// to analyze.
		s.log.WithError(err).Warn("content resolution failed")
		respondWithError(w, http.StatusBadRequest, "Unable to fetch article content from URL")
		return
	}

	if s.history != nil {
		if _, err := s.history.Add(input, result); err != nil {
			s.log.WithError(err).Warn("failed to persist analysis record")
		}
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"config": map[string]bool{
			"hasGemini":       s.cfg.Providers.GeminiAPIKey != "",
			"hasOpenAI":       s.cfg.Providers.OpenAIAPIKey != "",
			"hasNewsAPI":      s.cfg.Providers.NewsAPIKey != "",
			"scrapingEnabled": s.cfg.Scrape.Enabled,
			"historyEnabled":  s.history != nil,
		},
	})
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.history.List())
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(); err != nil {
		s.log.WithError(err).Error("failed to clear history")
		respondWithError(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// recoverMiddleware converts a panic into the fixed 5xx error shape so
// no caller ever sees a bare exception.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Errorf("panic serving %s: %v", r.URL.Path, rec)
				respondWithJSON(w, http.StatusInternalServerError, errorResult{
					Error:      "Internal server error",
					Label:      "Error",
					Confidence: 0,
					Keywords:   []string{"error"},
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
