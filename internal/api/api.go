// Package api exposes the verification orchestrator over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mrled/mailvet/internal/forms"
	"github.com/mrled/mailvet/internal/model"
)

// Handler serves the verification endpoints.
type Handler struct {
	verifier forms.Verifier
	gates    map[forms.Feature]*forms.Gate
	log      *slog.Logger
}

// NewHandler creates an API handler. gates may be empty; the /v1/submit
// endpoints then reject unknown features with 404.
func NewHandler(verifier forms.Verifier, gates []*forms.Gate, log *slog.Logger) *Handler {
	byFeature := make(map[forms.Feature]*forms.Gate, len(gates))
	for _, gate := range gates {
		byFeature[gate.Feature()] = gate
	}
	return &Handler{
		verifier: verifier,
		gates:    byFeature,
		log:      log,
	}
}

// Router builds the chi router with middleware.
func (h *Handler) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)
	r.Post("/v1/verify", h.handleVerify)
	r.Post("/v1/submit/{feature}", h.handleSubmit)

	return r
}

// verifyRequest is the payload for both POST endpoints.
type verifyRequest struct {
	Email string `json:"email"`
}

// verifyResponse reports the normalized status plus an advisory message for
// live feedback in form fields.
type verifyResponse struct {
	Status     string `json:"status"`
	Suggestion string `json:"suggestion,omitempty"`
	Message    string `json:"message,omitempty"`
	Severity   string `json:"severity,omitempty"`
}

// submitResponse reports whether a submission should be accepted.
type submitResponse struct {
	Accept   bool   `json:"accept"`
	Message  string `json:"message,omitempty"`
	Severity string `json:"severity,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	result := h.verifier.Verify(r.Context(), req.Email)

	resp := verifyResponse{
		Status:     result.Status.String(),
		Suggestion: result.SuggestedAddress,
	}
	if message, ok := forms.Advise(result); ok {
		resp.Message = message.Text
		resp.Severity = string(message.Severity)
	}

	status := http.StatusOK
	if result.Status == model.StatusServiceUnavailable {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	feature := forms.Feature(chi.URLParam(r, "feature"))
	gate, ok := h.gates[feature]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown feature"})
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	message := gate.CheckSubmission(r.Context(), req.Email)
	if message == nil {
		writeJSON(w, http.StatusOK, submitResponse{Accept: true})
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{
		Accept:   false,
		Message:  message.Text,
		Severity: string(message.Severity),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
