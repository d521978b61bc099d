package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/richxcame/mapir/internal/gateway"
	"github.com/richxcame/mapir/pkg/common"
	"github.com/richxcame/mapir/pkg/config"
	sentryerrors "github.com/richxcame/mapir/pkg/errors"
	"github.com/richxcame/mapir/pkg/logger"
	"github.com/richxcame/mapir/pkg/mapir"
	"github.com/richxcame/mapir/pkg/middleware"
	"github.com/richxcame/mapir/pkg/tracing"
	"go.uber.org/zap"
)

const (
	serviceName = "mapir-gateway"
	maxBodySize = 1 << 20
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	version := cfg.Server.Version

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting map.ir gateway",
		zap.String("service", serviceName),
		zap.String("version", version),
		zap.String("mapir_base_url", cfg.Mapir.BaseURL),
	)

	if err := sentryerrors.InitSentry(sentryerrors.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Environment:      cfg.Server.Environment,
		Release:          version,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		ServerName:       serviceName,
	}); err != nil {
		logger.Warn("Failed to initialize Sentry, continuing without error tracking", zap.Error(err))
	} else {
		defer sentryerrors.Flush(2 * time.Second)
		logger.Info("Sentry error tracking initialized successfully")
	}

	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: version,
		Environment:    cfg.Server.Environment,
		OTLPEndpoint:   cfg.Tracing.Endpoint,
		SampleRate:     cfg.Tracing.SampleRate,
		Enabled:        cfg.Tracing.Enabled,
	}, logger.Get())
	if err != nil {
		logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
	} else if tp != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Failed to shutdown tracer", zap.Error(err))
			}
		}()
	}

	if cfg.Mapir.APIKey == "" {
		logger.Warn("MAPIR_API_KEY not set, map.ir will reject requests")
	}
	client, err := mapir.NewClient(mapir.Config{
		APIKey:  cfg.Mapir.APIKey,
		BaseURL: cfg.Mapir.BaseURL,
		Timeout: cfg.Mapir.MapirTimeout(),
	})
	if err != nil {
		logger.Fatal("Failed to create map.ir client", zap.Error(err))
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(common.NoRouteHandler())
	router.NoMethod(common.NoMethodHandler())
	router.Use(middleware.RecoveryWithSentry())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestTimeout(cfg.Mapir.MapirTimeout()))
	router.Use(middleware.RequestLogger(serviceName))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins()))
	router.Use(middleware.MaxBodySize(maxBodySize))
	router.Use(middleware.Metrics(serviceName))
	if tp != nil {
		router.Use(middleware.TracingMiddleware(serviceName))
	}
	router.Use(middleware.ErrorHandler())

	router.GET("/healthz", common.HealthCheck(serviceName, version))
	router.GET("/health/live", common.LivenessProbe(serviceName, version))
	router.GET("/health/ready", common.ReadinessProbe(serviceName, version, map[string]func() error{
		"mapir_api_key": func() error {
			if cfg.Mapir.APIKey == "" {
				return errors.New("MAPIR_API_KEY is not set")
			}
			return nil
		},
	}))
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": serviceName, "version": version})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	gateway.NewHandler(client).RegisterRoutes(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
