package navigator

import (
	"sync/atomic"

	"github.com/vango-dev/approuter/pkg/query"
)

// EventRouteChange fires after every successful mount or in-place update.
const EventRouteChange = "route-change"

// Event is the payload of a route-change event.
type Event struct {
	Path    string            `json:"path"`
	Params  map[string]string `json:"params"`
	Query   query.Map         `json:"query"`
	Pattern string            `json:"pattern,omitempty"`
	URL     string            `json:"url"`
	Seq     uint64            `json:"seq"`

	// NotFound is set when the not-found page was mounted.
	NotFound bool `json:"notFound,omitempty"`
}

// Handler receives events.
type Handler func(Event)

type subscription struct {
	fn     Handler
	active atomic.Bool
}

// On subscribes fn to the named event and returns a function that removes
// the subscription. Handlers run in subscription order, one event at a
// time, outside the navigator's lock; they may navigate.
func (n *Navigator) On(name string, fn Handler) (off func()) {
	sub := &subscription{fn: fn}
	sub.active.Store(true)

	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return func() {}
	}
	n.handlers[name] = append(n.handlers[name], sub)
	n.mu.Unlock()

	return func() {
		sub.active.Store(false)
		n.mu.Lock()
		defer n.mu.Unlock()
		subs := n.handlers[name]
		for i, s := range subs {
			if s == sub {
				n.handlers[name] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// emitLocked queues an event for delivery. Callers hold n.mu and call
// flush after releasing it.
func (n *Navigator) emitLocked(name string, ev Event) {
	subs := append([]*subscription(nil), n.handlers[name]...)
	if len(subs) == 0 {
		return
	}
	n.queue = append(n.queue, func() {
		for _, s := range subs {
			if s.active.Load() {
				s.fn(ev)
			}
		}
	})
}

// flush delivers queued callbacks in order. Only one goroutine flushes at a
// time; callbacks queued while flushing are picked up by that goroutine.
func (n *Navigator) flush() {
	n.mu.Lock()
	if n.flushing {
		n.mu.Unlock()
		return
	}
	n.flushing = true
	for len(n.queue) > 0 {
		fn := n.queue[0]
		n.queue = n.queue[1:]
		n.mu.Unlock()
		fn()
		n.mu.Lock()
	}
	n.flushing = false
	n.mu.Unlock()
}
