package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/xyzbattle/internal/game"
	"github.com/lox/xyzbattle/internal/randutil"
)

// sessionEntry is one live game session and the connection playing it.
type sessionEntry struct {
	id       string
	seed     int64
	driver   *game.Local
	conn     *Connection
	lastSeen time.Time
}

// Hub owns the game sessions of a server and reaps the idle ones.
type Hub struct {
	clock       quartz.Clock
	logger      *log.Logger
	idleTimeout time.Duration
	maxSessions int
	seed        *int64

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	opened   int
}

func newHub(cfg Config, logger *log.Logger) *Hub {
	return &Hub{
		clock:       cfg.Clock,
		logger:      logger.WithPrefix("hub"),
		idleTimeout: cfg.IdleTimeout,
		maxSessions: cfg.MaxSessions,
		seed:        cfg.Seed,
		sessions:    make(map[string]*sessionEntry),
	}
}

// start runs the idle reaper until ctx is cancelled. The reaper checks
// twice per idle timeout, so a session lives at most 1.5 timeouts unused.
func (h *Hub) start(ctx context.Context) quartz.Waiter {
	period := max(h.idleTimeout/2, time.Second)
	return h.clock.TickerFunc(ctx, period, func() error {
		h.reap()
		return nil
	}, "hub", "reap")
}

// Open creates a session for conn.
func (h *Hub) Open(conn *Connection) (*sessionEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.maxSessions > 0 && len(h.sessions) >= h.maxSessions {
		return nil, ErrSessionLimit
	}

	var seed int64
	if h.seed != nil {
		seed = randutil.Derive(*h.seed, h.opened)
	} else {
		seed, _ = randutil.Seed(nil)
	}
	h.opened++

	id := uuid.NewString()
	logger := h.logger.With("session", id)
	session := game.NewSession(randutil.New(seed),
		game.WithClock(h.clock),
		game.WithLogger(logger),
	)
	entry := &sessionEntry{
		id:       id,
		seed:     seed,
		driver:   game.NewLocal(session),
		conn:     conn,
		lastSeen: h.clock.Now(),
	}
	h.sessions[id] = entry

	logger.Info("Session opened", "seed", seed, "total", len(h.sessions))
	return entry, nil
}

// Touch marks a session as active.
func (h *Hub) Touch(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.sessions[id]; ok {
		e.lastSeen = h.clock.Now()
	}
}

// Close forgets a session. Closing an unknown session is a no-op.
func (h *Hub) Close(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[id]; ok {
		delete(h.sessions, id)
		h.logger.Info("Session closed", "session", id, "total", len(h.sessions))
	}
}

// Len returns the number of open sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) reap() {
	now := h.clock.Now()

	h.mu.Lock()
	var idle []*sessionEntry
	for id, e := range h.sessions {
		if now.Sub(e.lastSeen) >= h.idleTimeout {
			idle = append(idle, e)
			delete(h.sessions, id)
		}
	}
	h.mu.Unlock()

	for _, e := range idle {
		h.logger.Info("Reaping idle session", "session", e.id, "idle", now.Sub(e.lastSeen))
		if e.conn != nil {
			_ = e.conn.Close() // Ignore close errors while reaping
		}
	}
}

// closeAll drops every session and closes its connection.
func (h *Hub) closeAll() {
	h.mu.Lock()
	entries := make([]*sessionEntry, 0, len(h.sessions))
	for _, e := range h.sessions {
		entries = append(entries, e)
	}
	clear(h.sessions)
	h.mu.Unlock()

	for _, e := range entries {
		if e.conn != nil {
			_ = e.conn.Close()
		}
	}
}
