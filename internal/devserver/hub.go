package devserver

import (
	"sync"

	"github.com/vango-dev/approuter/pkg/router"
)

// hub tracks connected sessions.
type hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newHub() *hub {
	return &hub{sessions: make(map[string]*session)}
}

func (h *hub) add(s *session) {
	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()
}

func (h *hub) remove(s *session) {
	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()
}

func (h *hub) snapshot() []*session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}

// broadcast sends msg to every session.
func (h *hub) broadcast(msg ServerMessage) {
	for _, s := range h.snapshot() {
		s.send(msg)
	}
}

// setTable swaps the route table of every session's navigator.
func (h *hub) setTable(t *router.Table) {
	for _, s := range h.snapshot() {
		s.nav.SetTable(t)
	}
}

// count returns the number of connected sessions.
func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// closeAll closes every session.
func (h *hub) closeAll() {
	for _, s := range h.snapshot() {
		s.close()
	}
}
