package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

// Config holds the settings of a server
type Config struct {
	Address     string
	IdleTimeout time.Duration
	MaxSessions int
	// Seed makes session deals reproducible; nil seeds each from the clock.
	Seed  *int64
	Clock quartz.Clock
}

// Server represents the WebSocket server
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	hub         *Hub
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	reaper      quartz.Waiter
	httpServer  *http.Server
}

// NewServer creates a new WebSocket server and starts its connection
// bookkeeping. Call Stop to release it.
func NewServer(cfg Config, logger *log.Logger) *Server {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 10 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	logger = logger.WithPrefix("server")

	s := &Server{
		addr: cfg.Address,
		upgrader: websocket.Upgrader{
			// Browser front ends may be served from anywhere
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		hub:         newHub(cfg, logger),
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
	s.reaper = s.hub.start(ctx)
	go s.run()
	return s
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens on the configured address until Stop is called
func (s *Server) Start() error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the WebSocket server and closes every session
func (s *Server) Stop(ctx context.Context) error {
	s.cancel()
	_ = s.reaper.Wait() // Cancellation error expected

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	srv := s.httpServer
	s.mu.Unlock()
	s.hub.closeAll()

	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// Sessions returns the number of open game sessions
func (s *Server) Sessions() int {
	return s.hub.Len()
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "session", conn.SessionID(), "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				s.hub.Close(conn.SessionID())
				_ = conn.Close() // Ignore close errors during unregistration
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "session", conn.SessionID(), "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, s.hub, s.logger)
	session, err := s.hub.Open(conn)
	if err != nil {
		s.logger.Warn("Rejecting connection", "error", err)
		if msg, mErr := NewMessage(MessageTypeError, ErrorData{Code: ErrorCode(err), Message: err.Error()}); mErr == nil {
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = ws.WriteJSON(msg)
		}
		_ = ws.Close()
		return
	}

	select {
	case s.register <- conn:
	case <-s.ctx.Done():
		s.hub.Close(session.id)
		_ = ws.Close()
		return
	}
	welcome, _ := NewMessage(MessageTypeWelcome, WelcomeData{SessionID: session.id})
	_ = conn.SendMessage(welcome)
	conn.Start(session)

	// Connection cleanup is handled by the connection itself
	go func() {
		<-conn.Done()
		select {
		case s.unregister <- conn:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK sessions=%d", s.hub.Len()) // Ignore write errors for health check
}
