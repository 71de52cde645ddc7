// Package server provides the HTTP handlers of the AI content proxy.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/at-ishikawa/studymaster/internal/inference"
)

// maxRequestBytes bounds the study material accepted in a single request.
const maxRequestBytes = 4 << 20

// GenerateContentRequest is the body of POST /api/generate-content.
type GenerateContentRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ContentHandler relays study material to the AI provider.
type ContentHandler struct {
	completer inference.Completer
	generator inference.Generator
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(completer inference.Completer, generator inference.Generator) *ContentHandler {
	return &ContentHandler{
		completer: completer,
		generator: generator,
	}
}

// NewMux registers the proxy routes.
func NewMux(handler *ContentHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate-content", handler.GenerateContent)
	mux.HandleFunc("/healthz", handler.Healthz)
	return mux
}

// GenerateContent returns the provider's chat completion unchanged, or the
// validated content when the parsed query parameter is true.
func (h *ContentHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s is not allowed", r.Method))
		return
	}

	var req GenerateContentRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, errors.New("text is required"))
		return
	}

	ctx := r.Context()
	logger := slog.Default().With("textLength", len(req.Text))
	if r.URL.Query().Get("parsed") == "true" {
		content, err := h.generator.GenerateContent(ctx, req.Text)
		if err != nil {
			logger.Error("failed to generate content", "error", err)
			writeError(w, http.StatusBadGateway, err)
			return
		}
		logger.Info("generated content",
			"flashcards", len(content.Flashcards),
			"quiz", len(content.Quiz),
		)
		writeJSON(w, http.StatusOK, content)
		return
	}

	body, err := h.completer.Complete(ctx, req.Text)
	if err != nil {
		logger.Error("failed to relay content request", "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	logger.Info("relayed content request", "responseLength", len(body))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *ContentHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s is not allowed", r.Method))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to write a response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
