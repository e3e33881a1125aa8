package http

import (
	"context"
	"net/http"

	"github.com/jmehdipour/email-tracker/internal/config"
	"github.com/jmehdipour/email-tracker/internal/http/middleware"
	"github.com/jmehdipour/email-tracker/internal/metrics"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

func NewServer(cfg config.Config, svc Tracker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	// echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(cfg.Log.Level))
	e.Server.ReadTimeout = cfg.HTTP.ReadTimeout
	e.Server.WriteTimeout = cfg.HTTP.WriteTimeout

	e.Pre(echoMid.RemoveTrailingSlash())
	e.Use(echoMid.Recover(), middleware.RequestLogger(logger))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Warn("metrics registration failed", zap.Error(err))
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/", welcomeHandler(cfg.App.Version))
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/readyz", readyHandler(svc))

	// routes
	e.GET("/track-email", trackEmailHandler(svc), middleware.NoStore())
	e.GET("/v1/tracking", lookupHandler(svc))

	return &Server{e: e, log: logger}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.e }

func (s *Server) Start(addr string) error {
	s.log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

func echoLogLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
