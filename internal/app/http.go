package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/config"
	"github.com/adanyl0v/go-task-manager/internal/delivery/http/v1"
	"github.com/adanyl0v/go-task-manager/internal/ratelimit"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

const readHeaderTimeout = 10 * time.Second

// MustListenAndServeHTTP serves the API until SIGINT or SIGTERM, then shuts
// down the server and releases the store and redis. It returns the exit code.
func MustListenAndServeHTTP() int {
	httpCfg := config.Global().HTTP

	router := gin.New()
	router.Use(requestLogger(globalLogger))
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:              net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		httpCfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				globalLogger.Info().Msg("shutting down http server")
				err := server.Shutdown(ctx)
				if err != nil {
					globalLogger.Error().
						Err(err).
						Msg("failed to shutdown http server")
				} else {
					globalLogger.Info().Msg("shut down http server")
				}

				// Handlers are drained at this point.
				CloseStore()
				DisconnectRedis()
				return err
			},
		},
	)

	code := <-wait
	globalLogger.Info().
		Int("code", code).
		Msg("exited")
	return code
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()

	authService := services.NewAuthService(
		globalLogger,
		globalStore,
		cfg.JWT.Issuer,
		[]byte(cfg.JWT.SigningKey),
		cfg.JWT.AccessTokenTTL,
	)
	v1Handler := v1.New(
		globalLogger,
		authService,
		services.NewTaskService(globalLogger, globalStore),
		services.NewUserService(globalLogger, globalStore),
		healthChecks()...,
	)

	var authLimits []gin.HandlerFunc
	if globalRedis != nil {
		limiter := ratelimit.NewLimiter(
			globalRedis,
			cfg.RateLimit.KeyPrefix,
			cfg.RateLimit.Limit,
			cfg.RateLimit.Window,
		)
		authLimits = append(authLimits, ratelimit.Middleware(globalLogger, limiter))
		globalLogger.Info().
			Int("limit", cfg.RateLimit.Limit).
			Dur("window", cfg.RateLimit.Window).
			Msg("enabled auth rate limiting")
	}

	v1.RegisterRoutes(router, v1Handler, authLimits...)
}

func healthChecks() []v1.HealthCheck {
	checks := []v1.HealthCheck{{
		Name:     "database",
		Critical: true,
		Ping:     globalStore.Ping,
	}}
	if globalRedis != nil {
		checks = append(checks, v1.HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error {
				return globalRedis.Ping(ctx).Err()
			},
		})
	}
	return checks
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Str("client_ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("handled request")
	}
}
