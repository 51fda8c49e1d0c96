package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/domain"
	paycalcmiddleware "github.com/rgehrsitz/paycalc/internal/server/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Regulatory *domain.RegulatoryConfig
	CalcLogger calculation.Logger
}

type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

// ConfigureRouter mounts every endpoint on a fresh chi router
func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	h := NewHandler(config.Dependencies.Regulatory, config.Dependencies.CalcLogger)

	router := chi.NewRouter()

	router.Use(paycalcmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/systems", h.ListSystems)
		r.Post("/salary/calculate", h.CalculateSalary)
		r.Post("/salary/compare", h.CompareSystems)
		r.Post("/salary/whatif", h.CompareWhatIf)
		r.Post("/salary/solve", h.SolveSalary)
		r.Post("/tax/estimate", h.EstimateTax)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler exposes the router, mostly for tests
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until ctx is cancelled, then drains outstanding requests
// within the shutdown timeout
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
