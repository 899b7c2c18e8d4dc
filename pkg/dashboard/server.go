package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/ziflex/lecho/v2"
)

const metricsPath = "/metrics"

type ServerConfig struct {
	Dashboard *Dashboard
	Logger    *zerolog.Logger
	// Metrics records request metrics when set. Gatherer backs /metrics.
	Metrics  *Metrics
	Gatherer prometheus.Gatherer
}

// Server exposes a Dashboard as a JSON HTTP API.
type Server struct {
	echo *echo.Echo
	log  zerolog.Logger
}

func NewServer(config ServerConfig) (*Server, error) {
	if config.Dashboard == nil {
		return nil, fmt.Errorf("dashboard is required")
	}

	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}
	log = log.With().Str("component", "api").Logger()
	elog := lecho.From(log)

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog

	server.Use(middleware.Recover())
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	server.Use(config.Metrics.Middleware())
	server.Use(compressMiddleware(metricsPath))

	h := &handlers{dashboard: config.Dashboard}
	server.GET("/healthz", h.Health)
	server.GET("/api/state", h.GetState)
	server.PUT("/api/operator", h.PutOperator)
	server.DELETE("/api/operator", h.DeleteOperator)
	server.PUT("/api/account", h.PutAccount)
	server.PUT("/api/token", h.PutToken)
	server.POST("/api/balances/refresh", h.RefreshBalances)
	server.POST("/api/accounts", h.CreateAccount)
	server.POST("/api/tokens", h.CreateToken)
	server.POST("/api/associations", h.Associate)
	server.POST("/api/transfers/hbar", h.TransferHbar)
	server.POST("/api/transfers/token", h.TransferToken)

	if config.Gatherer != nil {
		server.GET(metricsPath, echo.WrapHandler(promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{})))
	}

	return &Server{echo: server, log: log}, nil
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start(address string) error {
	s.log.Info().Str("address", address).Msg("dashboard API starting")
	err := s.echo.Start(address)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("dashboard API failed: %w", err)
	}
	s.log.Info().Msg("dashboard API stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
