package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"loadpv/internal/config"
	apierrors "loadpv/internal/errors"
	"loadpv/internal/exporter"
	"loadpv/internal/infrastructure"
	customMiddleware "loadpv/internal/middleware"
	"loadpv/internal/services"
	handlers "loadpv/internal/transport/http"
	"loadpv/internal/workbook"
)

// AppName is shown in startup logs
const AppName = "loadpv"

// Application represents the main application container
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	OTelProviders   *infrastructure.OTelProviders
	BusinessMetrics *infrastructure.BusinessMetrics
	SeriesService   *services.SeriesService
	HealthService   *services.HealthService
	ErrorHandler    *apierrors.ErrorHandler

	opener workbook.Opener
}

// Option customizes an Application built by New
type Option func(*Application)

// WithOpener replaces the workbook opener, for example with an in-memory one
func WithOpener(opener workbook.Opener) Option {
	return func(a *Application) {
		a.opener = opener
	}
}

// NewApplication loads configuration and logging from the environment and
// builds the application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires services, handlers and the HTTP server for cfg
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", config.AppVersion))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	businessMetrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:          cfg,
		Logger:          logger,
		OTelProviders:   otelProviders,
		BusinessMetrics: businessMetrics,
		ErrorHandler:    apierrors.NewErrorHandler(logger, cfg.Logging.Development),
		opener:          workbook.FileOpener{},
	}
	for _, opt := range opts {
		opt(app)
	}

	app.initializeServices()

	if err := app.setupRouter(); err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.SeriesService = services.NewSeriesService(a.Config.Datasets, a.opener, a.Logger,
		services.WithTracer(a.OTelProviders.Tracer),
		services.WithMetrics(a.BusinessMetrics),
	)
	a.HealthService = services.NewHealthService(config.AppVersion, a.Config.Datasets, a.Logger)
}

// setupRouter configures the HTTP router with all routes.
// Order: RequestID → RealIP → OTel → Logger → Recoverer → headers → CORS → rate limit → Timeout
func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.BusinessMetrics)
	if err != nil {
		return fmt.Errorf("failed to create OpenTelemetry middleware: %w", err)
	}

	// Scrapes stay out of request logs and metrics
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	validator := customMiddleware.NewQueryValidator(a.Logger)
	htmlHandler, err := handlers.NewHTMLHandler(a.SeriesService, validator, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create HTML handler: %w", err)
	}

	r.Group(func(r chi.Router) {
		r.Use(otelMiddleware.Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		r.Use(customMiddleware.DefaultSecureHeaders().Handler)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.getCORSConfig()))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))
		r.Use(customMiddleware.Compress(5))

		r.Get("/", htmlHandler.Index)
		r.Get("/view", htmlHandler.View)

		a.setupAPIRoutes(r, validator)
	})

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.Router = r
	return nil
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router, validator *customMiddleware.QueryValidator) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		seriesHandler := handlers.NewSeriesHandler(a.SeriesService, validator, a.ErrorHandler,
			exporter.RenderOptions{
				BOMPrefix:   false,
				ChartWidth:  a.Config.Chart.Width,
				ChartHeight: a.Config.Chart.Height,
			}, a.Logger)
		seriesHandler.RegisterRoutes(r)

		clientLogHandler := handlers.NewClientLogHandler(a.ErrorHandler, a.Logger)
		r.Post("/client-log", clientLogHandler.Handle)
	})
}

func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins:   a.Config.Security.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", customMiddleware.RequestIDHeader},
		ExposedHeaders:   []string{customMiddleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
		Logger:           a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the HTTP server in the background. A listen failure calls
// cancel so Run can shut down instead of exiting the process.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", config.AppVersion),
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))

	for _, ds := range a.Config.Datasets.All() {
		a.Logger.InfoContext(ctx, "Data source",
			slog.String("dataset", ds.Name),
			slog.String("path", ds.Path))
	}

	if status := a.HealthService.ReadinessCheck(ctx); !status.Ready() {
		a.Logger.WarnContext(ctx, "Starting with unavailable data sources")
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop gracefully shuts down the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "Error closing log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run starts the application and blocks until SIGINT/SIGTERM or a server
// failure, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "Received signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.InfoContext(ctx, "Server stopped unexpectedly")
	}

	return a.Stop(ctx)
}
