package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	apihttp "github.com/GriffinCanCode/Raksha/backend/internal/api/http"
	"github.com/GriffinCanCode/Raksha/backend/internal/api/middleware"
	"github.com/GriffinCanCode/Raksha/backend/internal/api/ws"
	"github.com/GriffinCanCode/Raksha/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/Raksha/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	desktops *desktop.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance using the default Prometheus registry
func NewServer(cfg *config.Config) (*Server, error) {
	logger := logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development)
	return New(cfg, logger, monitoring.NewMetrics())
}

// New creates a server with an explicit logger and metrics collector
func New(cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing Raksha overlay service",
		zap.String("port", cfg.Server.Port),
		zap.Int64("zindex_base", cfg.Desktop.ZIndexBase),
		zap.Int("max_desktops", cfg.Desktop.MaxDesktops),
		zap.Duration("idle_ttl", cfg.Desktop.IdleTTL),
	)

	tracer := tracing.New("overlay", logger.Logger, cfg.Logging.SlowSpan)

	// Built-in presets, then overrides from disk
	presets := catalog.New()
	if cfg.Catalog.Dir != "" {
		if _, err := catalog.NewLoader(presets, cfg.Catalog.Dir, logger.Logger).Load(); err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	desktops := desktop.NewManager(desktop.Settings{
		ZIndexBase:  cfg.Desktop.ZIndexBase,
		MaxDesktops: cfg.Desktop.MaxDesktops,
		IdleTTL:     cfg.Desktop.IdleTTL,
	}, presets).
		WithLogger(logger).
		WithMetrics(metrics)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	if metrics != nil {
		router.Use(monitoring.Middleware(metrics))
	}
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.Origins = cfg.Server.CORSOrigins
	router.Use(middleware.CORS(corsCfg))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limits))
	}

	handlers := apihttp.NewHandlers(desktops, metrics, logger)
	handlers.Register(router)

	wsHandler := ws.NewHandler(desktops, metrics, logger)
	router.GET("/desktops/:id/stream", wsHandler.HandleConnection)

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		desktops: desktops,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Handler returns the HTTP handler, gzip-wrapped when compression is enabled
func (s *Server) Handler() http.Handler {
	if s.config.Server.Compress {
		return compressed(s.router)
	}
	return s.router
}

// Desktops returns the desktop manager
func (s *Server) Desktops() *desktop.Manager {
	return s.desktops
}

// Run serves HTTP and sweeps idle desktops until ctx is cancelled, then
// shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	if s.config.Server.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, s.config.Server.MaxConnections)
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.desktops.Run(sweepCtx, s.config.Desktop.SweepInterval)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server",
			zap.String("addr", addr),
			zap.Int("max_connections", s.config.Server.MaxConnections),
		)
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server", zap.Duration("timeout", s.config.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	// Streams are hijacked connections; closing desktops ends them
	s.desktops.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close releases desktops and flushes the logger
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.desktops.Close()

	// Sync logger before exit
	_ = s.logger.Sync()
	return nil
}
