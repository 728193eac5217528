package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/mehedi-hridoy/creator-pulse/internal/config"
	apierrors "github.com/mehedi-hridoy/creator-pulse/internal/errors"
	"github.com/mehedi-hridoy/creator-pulse/internal/infrastructure"
	customMiddleware "github.com/mehedi-hridoy/creator-pulse/internal/middleware"
	"github.com/mehedi-hridoy/creator-pulse/internal/services"
	handlers "github.com/mehedi-hridoy/creator-pulse/internal/transport/http"
	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts"
)

// Application represents the HTTP server application container
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	OTelProviders   *infrastructure.OTelProviders
	Metrics         *infrastructure.BusinessMetrics
	AnalysisService *services.AnalysisService
	HealthService   *services.HealthService
	ErrorHandler    *apierrors.ErrorHandler

	mu       sync.Mutex
	listener net.Listener
}

// NewApplication creates a new application instance with dependency injection
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, apierrors.NewConfigError("configuration is required", nil)
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	analysis, err := services.NewAnalysisServiceFromConfig(a.Config.Analysis, a.Metrics, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize analysis service: %w", err)
	}
	a.AnalysisService = analysis
	a.HealthService = services.NewHealthService(analysis.Backend(), a.Logger)
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(chimw.RealIP)

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	// Scrapes bypass the rate limit and request logging
	r.Handle(config.MetricsEndpoint, a.OTelProviders.PrometheusHTTP)

	r.Group(func(r chi.Router) {
		otelMiddleware := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics)
		r.Use(otelMiddleware.Handler)
		r.Use(apierrors.NewErrorMiddleware(a.ErrorHandler, a.Logger).Handler)
		r.Use(apierrors.RecoveryMiddleware(a.ErrorHandler))
		r.Use(customMiddleware.DefaultSecureHeaders().Handler)
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Server.AllowedOrigins,
			Logger:         a.Logger,
		}))
		r.Use(customMiddleware.NewRateLimiterFromConfig(a.Config.Server.RateLimit, a.ErrorHandler, a.Logger).Handler)
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))

		a.setupAPIRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		r.Route("/"+contracts.APIVersion, func(r chi.Router) {
			r.Use(customMiddleware.ContentTypeValidator(a.ErrorHandler, "application/json", "text/plain"))
			analysisHandler := handlers.NewAnalysisHandler(a.AnalysisService, a.ErrorHandler, a.Config.Server.MaxBodyBytes, a.Logger)
			r.Mount("/", analysisHandler.Routes())
		})
	})
}

// createServer creates the HTTP server with configured timeouts
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Server.Address(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.Logger.Handler(), slog.LevelError),
	}
}

// Addr returns the bound listener address once Run has started listening
func (a *Application) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Run serves until ctx is cancelled or the server fails, then shuts down
// gracefully
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.mu.Lock()
	a.listener = ln
	a.mu.Unlock()

	a.Logger.InfoContext(ctx, "Starting server",
		slog.String("address", ln.Addr().String()),
		slog.String("version", contracts.Version),
		slog.String("engine", a.AnalysisService.Backend().Name()),
		slog.String("level", a.Config.Logging.Level))

	serveErr := make(chan error, 1)
	go func() {
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			_ = a.Stop(context.WithoutCancel(ctx))
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		a.Logger.InfoContext(ctx, "Shutdown requested")
	}

	return a.Stop(context.WithoutCancel(ctx))
}

// Stop gracefully stops the server and flushes telemetry
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}
