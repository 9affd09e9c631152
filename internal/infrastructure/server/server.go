package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/skydesk/internal/api/http"
	"github.com/GriffinCanCode/skydesk/internal/api/middleware"
	"github.com/GriffinCanCode/skydesk/internal/api/ws"
	"github.com/GriffinCanCode/skydesk/internal/domain/catalog"
	"github.com/GriffinCanCode/skydesk/internal/domain/clock"
	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
	"github.com/GriffinCanCode/skydesk/internal/domain/pointer"
	"github.com/GriffinCanCode/skydesk/internal/domain/surface"
	"github.com/GriffinCanCode/skydesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/skydesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/skydesk/internal/infrastructure/monitoring"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	store   *desktop.Store
	hub     *ws.Hub
	ticker  *clock.Ticker
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics

	mu     sync.Mutex
	http   *http.Server
	cancel context.CancelFunc
	done   chan struct{}
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing SkyDesk server",
		zap.String("port", cfg.Server.Port),
		zap.String("catalog_dir", cfg.Catalog.Dir),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	apps, err := catalog.FromDir(cfg.Catalog.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load app catalog: %w", err)
	}
	logger.Info("App catalog loaded", zap.Int("apps", apps.Len()))

	d := cfg.Desktop
	reducer := desktop.NewReducer(Settings(d))
	store := desktop.NewStore(reducer,
		desktop.WithLogger(logger.Component("desktop")),
		desktop.WithObserver(metrics),
	)

	viewport := surface.Viewport{Width: d.ViewportWidth, Height: d.ViewportHeight, TaskbarHeight: d.TaskbarHeight}
	launcher := surface.NewLauncher(store, apps)
	taskbar := surface.NewTaskbar(store)
	compositor := surface.NewCompositor(nil)

	handlers := apihttp.NewHandlers(apihttp.Deps{
		Store:      store,
		Launcher:   launcher,
		Taskbar:    taskbar,
		Chrome:     surface.NewChrome(store),
		Compositor: compositor,
		Viewport:   viewport,
		Metrics:    metrics,
		Logger:     logger.Component("http"),
	})
	hub := ws.NewHub(ws.Config{
		Store:          store,
		Launcher:       launcher,
		Taskbar:        taskbar,
		Compositor:     compositor,
		Viewport:       viewport,
		Pointer:        pointer.Options{MinSize: desktop.Size{Width: d.MinWidth, Height: d.MinHeight}},
		Metrics:        metrics,
		Logger:         logger.Component("ws"),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	ticker := clock.New(store, clock.Config{Interval: d.ClockInterval, Format: d.ClockFormat}, logger.Component("clock"))

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog(logger.Component("request")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSConfigFor(cfg.Server.AllowedOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}
	if cfg.Server.Gzip {
		router.Use(middleware.Gzip(middleware.DefaultGzipConfig()))
	}

	// Register routes
	handlers.Register(router)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/stream", hub.HandleConnection)

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		store:   store,
		hub:     hub,
		ticker:  ticker,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Settings maps desktop configuration onto reducer settings
func Settings(d config.DesktopConfig) desktop.Settings {
	return desktop.Settings{
		Theme:             desktop.Theme(d.Theme),
		StackBase:         d.StackBase,
		DefaultSize:       desktop.Size{Width: d.WindowWidth, Height: d.WindowHeight},
		SpawnOrigin:       desktop.Point{X: d.SpawnX, Y: d.SpawnY},
		SpawnSpread:       desktop.Size{Width: d.SpawnWidth, Height: d.SpawnHeight},
		NotificationLimit: d.NotificationLimit,
	}
}

// Router returns the HTTP handler, for tests and embedding
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Store returns the desktop store
func (s *Server) Store() *desktop.Store {
	return s.store
}

// Run starts the clock and serves HTTP until Shutdown is called
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	srv := &http.Server{Addr: addr, Handler: s.router}

	s.mu.Lock()
	if s.http != nil {
		s.mu.Unlock()
		cancel()
		return errors.New("server already running")
	}
	s.http, s.cancel, s.done = srv, cancel, done
	s.mu.Unlock()

	go func() {
		defer close(done)
		s.ticker.Run(ctx)
	}()

	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		return err
	}
	return nil
}

// Shutdown stops the clock, drops renderer connections and drains HTTP
// requests within the configured timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	s.mu.Lock()
	srv, cancel, done := s.http, s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	var err error
	if srv != nil {
		ctx, stop := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer stop()
		// Hijacked websocket connections are not tracked by http.Server.
		s.hub.Close()
		if err = srv.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP shutdown failed", zap.Error(err))
			err = fmt.Errorf("failed to shut down http server: %w", err)
		}
	}
	s.store.Close()

	// Sync logger before exit
	s.logger.Sync()

	return err
}
