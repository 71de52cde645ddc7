package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studymaster/internal/inference"
	mock_inference "github.com/at-ishikawa/studymaster/internal/mocks/inference"
	"github.com/at-ishikawa/studymaster/internal/studyset"
)

func TestContentHandler_GenerateContent(t *testing.T) {
	completion := `{"id":"chatcmpl-1","choices":[{"message":{"role":"assistant","content":"{\"flashcards\":[]}"}}]}`
	content := inference.Content{
		Flashcards: []studyset.Flashcard{{Question: "What is a cell?", Answer: "The basic unit of life"}},
	}

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		setup      func(completer *mock_inference.MockCompleter, generator *mock_inference.MockGenerator)
		wantStatus int
		wantBody   string
		wantError  string
	}{
		{
			name:   "relays the provider response",
			method: http.MethodPost,
			target: "/api/generate-content",
			body:   `{"text":"Cells are the basic unit of life."}`,
			setup: func(completer *mock_inference.MockCompleter, generator *mock_inference.MockGenerator) {
				completer.EXPECT().Complete(gomock.Any(), "Cells are the basic unit of life.").Return([]byte(completion), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   completion,
		},
		{
			name:   "returns parsed content",
			method: http.MethodPost,
			target: "/api/generate-content?parsed=true",
			body:   `{"text":"Cells"}`,
			setup: func(completer *mock_inference.MockCompleter, generator *mock_inference.MockGenerator) {
				generator.EXPECT().GenerateContent(gomock.Any(), "Cells").Return(content, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"flashcards":[{"question":"What is a cell?","answer":"The basic unit of life"}],"quiz":null}`,
		},
		{
			name:       "rejects other methods",
			method:     http.MethodGet,
			target:     "/api/generate-content",
			wantStatus: http.StatusMethodNotAllowed,
			wantError:  "method GET is not allowed",
		},
		{
			name:       "rejects a broken body",
			method:     http.MethodPost,
			target:     "/api/generate-content",
			body:       `{"text":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "rejects empty text",
			method:     http.MethodPost,
			target:     "/api/generate-content",
			body:       `{"text":"  "}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "text is required",
		},
		{
			name:   "provider failure is a bad gateway",
			method: http.MethodPost,
			target: "/api/generate-content",
			body:   `{"text":"Cells"}`,
			setup: func(completer *mock_inference.MockCompleter, generator *mock_inference.MockGenerator) {
				completer.EXPECT().Complete(gomock.Any(), "Cells").Return(nil, errors.New("response error 500"))
			},
			wantStatus: http.StatusBadGateway,
			wantError:  "response error 500",
		},
		{
			name:   "malformed content is a bad gateway",
			method: http.MethodPost,
			target: "/api/generate-content?parsed=true",
			body:   `{"text":"Cells"}`,
			setup: func(completer *mock_inference.MockCompleter, generator *mock_inference.MockGenerator) {
				generator.EXPECT().GenerateContent(gomock.Any(), "Cells").
					Return(inference.Content{}, fmt.Errorf("inference.ParseContent() > %w", inference.ErrMalformedContent))
			},
			wantStatus: http.StatusBadGateway,
			wantError:  inference.ErrMalformedContent.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			completer := mock_inference.NewMockCompleter(ctrl)
			generator := mock_inference.NewMockGenerator(ctrl)
			if tt.setup != nil {
				tt.setup(completer, generator)
			}

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			NewMux(NewContentHandler(completer, generator)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.wantError != "" {
				var got errorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Contains(t, got.Error, tt.wantError)
				return
			}
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestContentHandler_Healthz(t *testing.T) {
	handler := NewMux(NewContentHandler(nil, nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name           string
		allowedOrigins []string
		method         string
		origin         string
		wantStatus     int
		wantOrigin     string
	}{
		{
			name:           "allowed origin is echoed",
			allowedOrigins: []string{"http://localhost:3000"},
			method:         http.MethodPost,
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusTeapot,
			wantOrigin:     "http://localhost:3000",
		},
		{
			name:           "unknown origin gets no allow header",
			allowedOrigins: []string{"http://localhost:3000"},
			method:         http.MethodPost,
			origin:         "http://evil.example",
			wantStatus:     http.StatusTeapot,
		},
		{
			name:           "wildcard allows any origin",
			allowedOrigins: []string{"*"},
			method:         http.MethodPost,
			origin:         "http://anything.example",
			wantStatus:     http.StatusTeapot,
			wantOrigin:     "*",
		},
		{
			name:           "preflight is answered directly",
			allowedOrigins: []string{"http://localhost:3000"},
			method:         http.MethodOptions,
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusNoContent,
			wantOrigin:     "http://localhost:3000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/generate-content", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			CORSMiddleware(next, tt.allowedOrigins).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}
