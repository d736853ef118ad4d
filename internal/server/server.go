// Package server exposes the dashboard over HTTP.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"StockWatcher/internal/metrics"
	"StockWatcher/internal/model"
	"StockWatcher/internal/presenter"
	"StockWatcher/internal/runner"
)

//go:embed static
var staticFiles embed.FS

// Runner executes one analysis run; *runner.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, req model.AnalysisRequest) (*presenter.Dashboard, error)
}

// Config holds the request defaults of the dashboard.
type Config struct {
	Addr          string
	DefaultSymbol string
	DefaultStart  time.Time
}

// Server handles the dashboard HTTP routes.
type Server struct {
	cfg     Config
	runner  Runner
	metrics *metrics.Metrics
	logger  zerolog.Logger
	router  *mux.Router
	now     func() time.Time
}

// New creates a Server and registers its routes.
func New(cfg Config, r Runner, m *metrics.Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		runner:  r,
		metrics: m,
		logger:  logger.With().Str("component", "server").Logger(),
		router:  mux.NewRouter(),
		now:     time.Now,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestLogger)
	s.router.HandleFunc("/api/health", s.healthHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/api/dashboard", s.dashboardHandler).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(static))).Methods(http.MethodGet)
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})
	return c.Handler(s.router)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info().Msg("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dashboardHandler runs an analysis for ?ticker=&start=&end=. Missing inputs
// fall back to the configured ticker, the default start and today.
func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dash, err := s.runner.Run(r.Context(), req)
	switch {
	case errors.Is(err, runner.ErrSuperseded):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads the response.
		w.WriteHeader(499)
	case err != nil:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("dashboard run failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
	default:
		writeJSON(w, http.StatusOK, dash)
	}
}

func (s *Server) parseRequest(r *http.Request) (model.AnalysisRequest, error) {
	q := r.URL.Query()
	symbol := q.Get("ticker")
	if symbol == "" {
		symbol = s.cfg.DefaultSymbol
	}
	start, err := model.ParseDate(q.Get("start"), s.cfg.DefaultStart)
	if err != nil {
		return model.AnalysisRequest{}, err
	}
	end, err := model.ParseDate(q.Get("end"), model.CalendarDate(s.now()))
	if err != nil {
		return model.AnalysisRequest{}, err
	}
	return model.NewAnalysisRequest(symbol, start, end)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
