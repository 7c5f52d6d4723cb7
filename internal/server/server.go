// Package server exposes the commission engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fjacquet/commission-calc/internal/batch"
	"fjacquet/commission-calc/internal/catalog"
	"fjacquet/commission-calc/internal/config"
	"fjacquet/commission-calc/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// Server routes calculation requests to the engine.
type Server struct {
	cfg       config.ServerConfig
	catalog   *catalog.Catalog
	processor *batch.Processor
	currency  string
	logger    logging.Logger
	limiter   *rate.Limiter
	router    chi.Router
}

// New builds a server and its routes.
func New(cfg config.ServerConfig, cat *catalog.Catalog, processor *batch.Processor, currency string, logger logging.Logger) *Server {
	if cat == nil {
		cat = catalog.New(nil, nil)
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if processor == nil {
		processor = batch.NewProcessor(logger, batch.WithResolver(cat), batch.WithValidation(true))
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	s := &Server{
		cfg:       cfg,
		catalog:   cat,
		processor: processor,
		currency:  currency,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.rateLimit)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/services", s.handleListServices)
		r.Get("/advisors", s.handleListAdvisors)

		r.Route("/commissions", func(r chi.Router) {
			r.Post("/calculate", s.handleCalculate)
			r.Post("/batch", s.handleBatch)
			r.Post("/deductibles/total", s.handleDeductiblesTotal)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", logging.F("address", s.cfg.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("Server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
