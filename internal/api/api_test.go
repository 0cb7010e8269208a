package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mrled/mailvet/internal/forms"
	"github.com/mrled/mailvet/internal/model"
)

// stubVerifier answers every call with a fixed result.
type stubVerifier struct {
	result model.Result
}

func (s *stubVerifier) Verify(ctx context.Context, address string) model.Result {
	return s.result
}

func newTestHandler(result model.Result) *Handler {
	verifier := &stubVerifier{result: result}
	gates := []*forms.Gate{
		forms.NewGate(forms.FeatureComments, true, verifier),
		forms.NewGate(forms.FeatureCheckout, false, verifier),
	}
	return NewHandler(verifier, gates, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doRequest(t *testing.T, handler *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(model.Result{})

	rec := doRequest(t, handler, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestVerifyEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		result     model.Result
		body       string
		wantCode   int
		wantStatus string
	}{
		{
			name:       "valid address",
			result:     model.Result{Status: model.StatusValid},
			body:       `{"email":"user@example.com"}`,
			wantCode:   http.StatusOK,
			wantStatus: "valid",
		},
		{
			name:       "invalid with suggestion",
			result:     model.Result{Status: model.StatusInvalid, SuggestedAddress: "user@gmail.com"},
			body:       `{"email":"user@gmial.com"}`,
			wantCode:   http.StatusOK,
			wantStatus: "invalid",
		},
		{
			name:       "service unavailable",
			result:     model.Result{Status: model.StatusServiceUnavailable},
			body:       `{"email":"user@example.com"}`,
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "service_unavailable",
		},
		{
			name:     "missing email",
			body:     `{}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed body",
			body:     `not json`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(tt.result)

			rec := doRequest(t, handler, http.MethodPost, "/v1/verify", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status code = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantStatus == "" {
				return
			}

			var resp struct {
				Status     string `json:"status"`
				Suggestion string `json:"suggestion"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if resp.Suggestion != tt.result.SuggestedAddress {
				t.Errorf("suggestion = %q, want %q", resp.Suggestion, tt.result.SuggestedAddress)
			}
		})
	}
}

func TestSubmitEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		feature    string
		result     model.Result
		wantCode   int
		wantAccept bool
	}{
		{
			name:       "enabled gate accepts valid",
			feature:    "comments",
			result:     model.Result{Status: model.StatusValid},
			wantCode:   http.StatusOK,
			wantAccept: true,
		},
		{
			name:       "enabled gate blocks disposable",
			feature:    "comments",
			result:     model.Result{Status: model.StatusDisposable},
			wantCode:   http.StatusOK,
			wantAccept: false,
		},
		{
			name:       "disabled gate accepts anything",
			feature:    "checkout",
			result:     model.Result{Status: model.StatusInvalid},
			wantCode:   http.StatusOK,
			wantAccept: true,
		},
		{
			name:     "unknown feature",
			feature:  "newsletter",
			result:   model.Result{Status: model.StatusValid},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(tt.result)

			rec := doRequest(t, handler, http.MethodPost, "/v1/submit/"+tt.feature, `{"email":"user@example.com"}`)
			if rec.Code != tt.wantCode {
				t.Fatalf("status code = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp struct {
				Accept  bool   `json:"accept"`
				Message string `json:"message"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Accept != tt.wantAccept {
				t.Errorf("accept = %v, want %v", resp.Accept, tt.wantAccept)
			}
			if !resp.Accept && resp.Message == "" {
				t.Error("blocked submission carries no message")
			}
		})
	}
}

func TestVerifyEndpointMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(model.Result{})

	rec := doRequest(t, handler, http.MethodGet, "/v1/verify", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
