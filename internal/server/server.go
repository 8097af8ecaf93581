package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oshokin/reqrelay/internal/constants"
	"github.com/oshokin/reqrelay/internal/logger"
	"github.com/oshokin/reqrelay/internal/relay"
	"github.com/oshokin/reqrelay/internal/version"
)

const (
	// DefaultMaxBodySize caps the size of an inbound request descriptor.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10 MB

	// readHeaderTimeout bounds how long a client may take to send request headers.
	readHeaderTimeout = 10 * time.Second

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 15 * time.Second
)

// Config holds the settings of the HTTP API.
type Config struct {
	// ListenAddress is the address to listen on.
	ListenAddress string
	// RequestTimeout bounds a single relayed call; zero means none.
	RequestTimeout time.Duration
	// MaxBodySize caps inbound descriptors; zero uses DefaultMaxBodySize.
	MaxBodySize int64
	// Backend is reported by the health endpoint.
	Backend string
}

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
	State string `json:"state"`
}

// healthResponse is the JSON body of the health endpoint.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Backend string `json:"backend"`
}

// Server is the HTTP surface of the relay.
type Server struct {
	cfg    Config
	relay  relay.Relay
	router chi.Router
}

// NewServer creates a Server that forwards calls to r.
func NewServer(cfg Config, r relay.Relay) *Server {
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}

	s := &Server{
		cfg:    cfg,
		relay:  r,
		router: chi.NewRouter(),
	}

	s.routes()

	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/send", s.handleSend)
		r.Post("/validate", s.handleValidate)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.ListenAddress,
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := s.HTTPServer()

	errCh := make(chan error, 1)

	go func() {
		logger.Infof(ctx, "Listening on %s", httpServer.Addr)

		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: version.Short(),
		Backend: s.cfg.Backend,
	})
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	descriptor, err := s.decode(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	ctx := r.Context()

	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	response, err := s.relay.Send(ctx, descriptor)
	if err != nil {
		status := statusForError(err)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}

		logger.Warnf(r.Context(), "Relayed call failed: %v", err)
		writeError(w, status, err)

		return
	}

	payload, err := relay.EncodeResponse(response)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)

		return
	}

	w.Header().Set(constants.HeaderContentType, constants.MIMETypeJSON)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	descriptor, err := s.decode(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	if err = s.relay.Validate(r.Context(), descriptor); err != nil {
		writeError(w, statusForError(err), err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decode reads and decodes a request descriptor from the body.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*relay.RequestDescriptor, error) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %v", relay.ErrSerialization, err)
	}

	return relay.DecodeRequest(payload)
}

// statusForError maps a relay error to an HTTP status code.
func statusForError(err error) int {
	switch {
	case errors.Is(err, relay.ErrSerialization):
		return http.StatusBadRequest
	case relay.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, relay.ErrHostUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, relay.ErrNetwork), errors.Is(err, relay.ErrBodyRead):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// logRequests logs every API call with the chi request ID attached to the context logger.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithKV(r.Context(), "http_request_id", middleware.GetReqID(r.Context()))
		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		startTime := time.Now()

		next.ServeHTTP(wrapped, r.WithContext(ctx))

		logger.InfoKV(ctx, "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.Status(),
			"bytes", wrapped.BytesWritten(),
			"duration", time.Since(startTime),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(constants.HeaderContentType, constants.MIMETypeJSON)
	w.WriteHeader(status)

	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: err.Error(),
		State: relay.TerminalState(err).String(),
	})
}
