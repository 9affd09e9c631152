package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/skydesk/internal/domain/desktop"
	"github.com/GriffinCanCode/skydesk/internal/domain/pointer"
	"github.com/GriffinCanCode/skydesk/internal/domain/surface"
	"github.com/GriffinCanCode/skydesk/internal/infrastructure/monitoring"
)

// Config wires a Hub
type Config struct {
	Store      *desktop.Store
	Launcher   *surface.Launcher
	Taskbar    *surface.Taskbar
	Compositor *surface.Compositor
	Viewport   surface.Viewport
	Pointer    pointer.Options
	Metrics    *monitoring.Metrics
	Logger     *zap.Logger

	// AllowedOrigins limits browser origins; empty or "*" allows all.
	AllowedOrigins []string
	PingInterval   time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
}

// Hub accepts renderer connections. Each connection is one pointing device
// with its own bus and tracker; all of them share the store.
type Hub struct {
	store      *desktop.Store
	launcher   *surface.Launcher
	taskbar    *surface.Taskbar
	compositor *surface.Compositor
	viewport   surface.Viewport
	pointer    pointer.Options
	metrics    *monitoring.Metrics
	logger     *zap.Logger
	sanitizer  *bluemonday.Policy
	upgrader   websocket.Upgrader

	pingInterval   time.Duration
	pongWait       time.Duration
	maxMessageSize int64

	mu      sync.Mutex
	clients map[string]*client
}

// NewHub creates a hub
func NewHub(cfg Config) *Hub {
	store := desktop.MustStore(cfg.Store, "websocket hub")
	if cfg.Launcher == nil {
		cfg.Launcher = surface.NewLauncher(store, nil)
	}
	if cfg.Taskbar == nil {
		cfg.Taskbar = surface.NewTaskbar(store)
	}
	if cfg.Compositor == nil {
		cfg.Compositor = surface.NewCompositor(nil)
	}
	if !cfg.Viewport.Valid() {
		cfg.Viewport = surface.DefaultViewport()
	}
	if cfg.Pointer == (pointer.Options{}) {
		cfg.Pointer = pointer.DefaultOptions()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = 60 * time.Second
	}
	if cfg.PingInterval <= 0 || cfg.PingInterval >= cfg.PongWait {
		cfg.PingInterval = cfg.PongWait * 9 / 10
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = 64 * 1024
	}

	return &Hub{
		store:      store,
		launcher:   cfg.Launcher,
		taskbar:    cfg.Taskbar,
		compositor: cfg.Compositor,
		viewport:   cfg.Viewport,
		pointer:    cfg.Pointer,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		sanitizer:  bluemonday.StrictPolicy(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
		pingInterval:   cfg.PingInterval,
		pongWait:       cfg.PongWait,
		maxMessageSize: cfg.MaxMessageSize,
		clients:        make(map[string]*client),
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// HandleConnection upgrades the request and serves the connection until
// it drops
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	cl := h.newClient(conn)
	h.register(cl)
	defer h.unregister(cl)

	cl.run()
}

// Connections returns the number of live connections
func (h *Hub) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Listeners returns the pointer listeners attached across all devices
func (h *Hub) Listeners() int {
	total := 0
	for _, cl := range h.snapshot() {
		total += cl.bus.Listeners()
	}
	return total
}

// Close drops every connection
func (h *Hub) Close() {
	for _, cl := range h.snapshot() {
		cl.conn.Close()
	}
}

func (h *Hub) newClient(conn *websocket.Conn) *client {
	cl := &client{
		id:       uuid.New().String(),
		hub:      h,
		conn:     conn,
		bus:      pointer.NewBus(),
		out:      make(chan ServerMessage, 16),
		dirty:    make(chan struct{}, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		viewport: h.viewport,
	}
	cl.logger = h.logger.With(zap.String("conn_id", cl.id), zap.String("remote", conn.RemoteAddr().String()))
	cl.tracker = pointer.NewTracker(h.store, cl.bus, h.pointer)
	if h.metrics != nil {
		cl.bus.OnChange(cl.trackListeners)
	}
	return cl
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
	cl.logger.Info("Renderer connected")
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl.id)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.DecWSConnections()
	}
	cl.logger.Info("Renderer disconnected")
}

func (h *Hub) snapshot() []*client {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		out = append(out, cl)
	}
	return out
}
