package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/metar-decoder/internal/domain"
	"github.com/couchcryptid/metar-decoder/internal/observability"
)

// maxReportBytes bounds a /decode request body.
const maxReportBytes = 64 << 10

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// DecoderResolver picks the decoder for a request's locale.
// *cache.DecoderSet implements it.
type DecoderResolver interface {
	Locale(name string) (*domain.Decoder, error)
	Negotiate(acceptLanguage string) *domain.Decoder
}

// Server exposes health, readiness, metrics and on-demand decoding.
type Server struct {
	httpServer *http.Server
	decoders   DecoderResolver
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// decodeRequest is the POST /decode body.
type decodeRequest struct {
	Report  string `json:"report"`
	Station string `json:"station,omitempty"`
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// POST /decode routes.
func NewServer(addr string, ready ReadinessChecker, decoders DecoderResolver, metrics *observability.Metrics, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		decoders: decoders,
		metrics:  metrics,
		logger:   logger,
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Method(http.MethodPost, "/decode", gzhttp.GzipHandler(http.HandlerFunc(s.handleDecode)))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleDecode decodes one report. ?locale= takes precedence over
// Accept-Language.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReportBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decoder := s.decoders.Negotiate(r.Header.Get("Accept-Language"))
	if name := r.URL.Query().Get("locale"); name != "" {
		d, err := s.decoders.Locale(name)
		if err != nil {
			s.fail(w, http.StatusBadRequest, err.Error())
			return
		}
		decoder = d
	}

	report, err := decoder.DecodeReport(req.Station, req.Report)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyReport) {
			s.fail(w, http.StatusBadRequest, "report is required")
			return
		}
		s.logger.Error("decode report failed", "error", err, "station", req.Station)
		s.fail(w, http.StatusInternalServerError, "decode failed")
		return
	}

	s.metrics.HTTPDecodes.WithLabelValues("success").Inc()
	for _, tok := range report.Tokens {
		s.metrics.TokensDecoded.WithLabelValues(tok.Kind).Inc()
	}
	w.Header().Set("Content-Language", report.Locale)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	s.metrics.HTTPDecodes.WithLabelValues("error").Inc()
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
