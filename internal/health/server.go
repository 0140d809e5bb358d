package health

import (
	"bluebgg/internal/version"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

// Tells whether the service can do its job
type Probe interface {
	Ready() bool
}

type Server struct {
	http    *http.Server
	probe   Probe
	started time.Time
}

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version"`
}

type readyzResponse struct {
	Ready bool `json:"ready"`
}

func NewServer(listen string, probe Probe) *Server {
	s := &Server{probe: probe, started: time.Now()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)
	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)

	s.http = &http.Server{
		Addr:              listen,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Serve until the context is done, then shut down gracefully
func (s *Server) Run(ctx context.Context) error {

	errs := make(chan error, 1)
	go func() {
		log.Info().Msg(fmt.Sprintf("Health server listening on %s", s.http.Addr))
		errs <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("health server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Health server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shut down health server: %w", err)
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, healthzResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(s.started).Seconds(),
		Version:       version.Version,
	})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ready := s.probe.Ready()
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	writeJson(w, status, readyzResponse{Ready: ready})
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Could not write health response")
	}
}

// One debug line per request
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http_request")
	})
}
