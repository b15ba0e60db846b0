// Package api serves the small JSON API under /api: a health check and the
// demo CRM login.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"mouldsite/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	ServiceName = "Mould & Restoration CRM API"
	Version     = "1.0.0"
)

type Config struct {
	Environment string
	SigningKey  string
	TokenTTL    time.Duration
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Now         func() time.Time
}

// Handler wires the API endpoints to a chi router.
type Handler struct {
	environment string
	signingKey  []byte
	tokenTTL    time.Duration
	logger      *slog.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func New(cfg Config) (*Handler, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("api: signing key is required")
	}

	h := &Handler{
		environment: cfg.Environment,
		signingKey:  []byte(cfg.SigningKey),
		tokenTTL:    cfg.TokenTTL,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		now:         cfg.Now,
	}
	if h.environment == "" {
		h.environment = "development"
	}
	if h.tokenTTL <= 0 {
		h.tokenTTL = 8 * time.Hour
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h, nil
}

// Router returns the API routes rooted at /api.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(corsHandler())
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Route("/api", func(api chi.Router) {
		api.NotFound(notFound)
		api.MethodNotAllowed(methodNotAllowed)
		h.Register(api)
	})
	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// Register mounts the endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Options("/health", optionsOK)
	r.Post("/auth/login", h.HandleLogin)
	r.Options("/auth/login", optionsOK)
}

// corsHandler allows any origin. Preflight requests are answered by the
// middleware itself with 200.
func corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         600,
	})
}

// optionsOK answers a bare OPTIONS request that carries no preflight headers.
func optionsOK(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
