package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/console/internal/infrastructure/config"
	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/infrastructure/intl"
	"github.com/erp/console/internal/infrastructure/logger"
	"github.com/erp/console/internal/infrastructure/telemetry"
	"github.com/erp/console/internal/interfaces/http/handler"
	"github.com/erp/console/internal/interfaces/http/middleware"
	"github.com/erp/console/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ERP Console",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("erp_base_url", cfg.ERP.BaseURL),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize continuous profiling
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Warn("Failed to start profiler", zap.Error(err))
	} else {
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping profiler", zap.Error(err))
			}
		}()
	}
	if tracerProvider.IsEnabled() && profiler != nil && profiler.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Initialize the ERP backend client
	erpClient, err := erp.NewClient(erp.Config{
		BaseURL: cfg.ERP.BaseURL,
		Timeout: cfg.ERP.RequestTimeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize ERP client", zap.Error(err))
	}

	// Load translation bundle
	bundle, err := intl.NewBundle()
	if err != nil {
		log.Fatal("Failed to load translations", zap.Error(err))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. Localizer - Pick the response language
	// 6. Tracing - Per-request spans (if enabled)
	// 7. SessionAuth - Gate screens on the session token
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLogger(log))

	// Configured CORS values override the defaults field by field.
	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.Localizer(bundle))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	engine.Use(middleware.SessionAuth(middleware.SessionConfig{
		CookieName: cfg.Session.CookieName,
		LoginPath:  cfg.Session.LoginPath,
		SkipPaths: []string{
			"/health",
			"/api/v1/login",
			"/api/v1/logout",
		},
	}))

	screenCfg := handler.ScreenConfig{LoginPath: cfg.Session.LoginPath}

	automationHandler := handler.NewAutomationHandler(erpClient, screenCfg, cfg.Automation.PollInterval, log)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAuthHandler(erpClient, cfg.Session)).
		Register(handler.NewAccountingHandler(erpClient, screenCfg)).
		Register(handler.NewCRMHandler(erpClient, screenCfg)).
		Register(handler.NewHRMHandler(erpClient, screenCfg)).
		Register(handler.NewMESHandler(erpClient, screenCfg)).
		Register(handler.NewWarehouseHandler(erpClient, screenCfg)).
		Register(handler.NewDispatchHandler(erpClient, screenCfg)).
		Register(handler.NewProjectHandler(erpClient, screenCfg)).
		Register(automationHandler)
	r.Setup()

	// Keep the dashboard snapshot warm
	pollCtx, stopPolling := context.WithCancel(context.Background())
	defer stopPolling()
	if cfg.Automation.PollEnabled {
		go automationHandler.Run(pollCtx)
		log.Info("Automation dashboard polling started",
			zap.Duration("interval", cfg.Automation.PollInterval),
		)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	stopPolling()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
