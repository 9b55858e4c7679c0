// Package server tracks connected sessions. Every session runs its own
// private scene; the hub only counts sessions, aggregates kill totals and
// broadcasts shutdown.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Hub is the interface clients use to announce themselves.
// Decouples the Client from the concrete Server implementation.
type Hub interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportKills(clientID int, kills int)
	Stats() Stats
}

// Server keeps the session registry.
type Server struct {
	clients      map[int]*ClientHandle
	nextClientID int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	sessions   atomic.Int64
	totalKills atomic.Int64
}

// Compile-time check that Server implements Hub.
var _ Hub = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to client (shutdown)
	kills    int
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Stats is a snapshot of hub-wide counters.
type Stats struct {
	Sessions   int
	TotalKills int64
}

// NewServer creates a new session hub.
func NewServer() *Server {
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
	}
}

// Run processes registrations until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case handle := <-s.registerCh:
			s.register(handle)
		case clientID := <-s.unregisterCh:
			s.unregister(clientID)
		}
	}
}

func (s *Server) register(handle *ClientHandle) {
	s.mu.Lock()
	s.clients[handle.ID] = handle
	s.mu.Unlock()
	s.sessions.Add(1)
}

func (s *Server) unregister(clientID int) {
	s.mu.Lock()
	handle, ok := s.clients[clientID]
	if ok {
		close(handle.EventsCh)
		delete(s.clients, clientID)
	}
	s.mu.Unlock()
	if ok {
		s.sessions.Add(-1)
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// ReportKills records a session's running kill count. Counts only grow.
func (s *Server) ReportKills(clientID int, kills int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	handle, ok := s.clients[clientID]
	if !ok || kills <= handle.kills {
		return
	}
	s.totalKills.Add(int64(kills - handle.kills))
	handle.kills = kills
}

// Stats returns the current counters.
func (s *Server) Stats() Stats {
	return Stats{
		Sessions:   int(s.sessions.Load()),
		TotalKills: s.totalKills.Load(),
	}
}

// Local is a Hub for a single local player. It needs no Run loop.
type Local struct {
	handle *ClientHandle
	kills  atomic.Int64
}

// NewLocal creates a single-player hub.
func NewLocal() *Local {
	return &Local{}
}

// Compile-time check that Local implements Hub.
var _ Hub = (*Local)(nil)

// RegisterClient returns the only handle.
func (l *Local) RegisterClient(username string) *ClientHandle {
	l.handle = &ClientHandle{ID: 1, Username: username, EventsCh: make(chan ClientEvent, 1)}
	return l.handle
}

// UnregisterClient is a no-op for the local hub.
func (l *Local) UnregisterClient(int) {}

// ReportKills records the local kill count.
func (l *Local) ReportKills(_ int, kills int) {
	l.kills.Store(int64(kills))
}

// Stats returns the local counters.
func (l *Local) Stats() Stats {
	return Stats{Sessions: 1, TotalKills: l.kills.Load()}
}
