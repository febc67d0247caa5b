package navigator

import (
	"github.com/vango-dev/approuter/pkg/query"
	"github.com/vango-dev/approuter/pkg/router"
)

// State is the phase of the most recent navigation.
type State int

const (
	StateIdle State = iota
	StateMatching
	StateResolvingLayout
	StateLoading
	StateMounting
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateMatching:
		return "matching"
	case StateResolvingLayout:
		return "resolving-layout"
	case StateLoading:
		return "loading"
	case StateMounting:
		return "mounting"
	case StateNotFound:
		return "not-found"
	default:
		return "idle"
	}
}

// Transition is a state change of one navigation.
type Transition struct {
	Seq  uint64
	From State
	To   State
}

// Outcome is how a navigation ended.
type Outcome int

const (
	// OutcomeMounted: a new page was mounted (with a new or reused layout).
	OutcomeMounted Outcome = iota

	// OutcomeUpdated: the mounted page received new parameters in place.
	OutcomeUpdated

	// OutcomeNotFound: nothing matched and the not-found page was mounted.
	OutcomeNotFound

	// OutcomeSuperseded: a newer navigation started first; nothing changed.
	OutcomeSuperseded

	// OutcomeFailed: loading failed; the previous mount is kept.
	OutcomeFailed

	// OutcomeDisposed: the navigator was disposed.
	OutcomeDisposed

	// OutcomeIgnored: a click was not intercepted.
	OutcomeIgnored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMounted:
		return "mounted"
	case OutcomeUpdated:
		return "updated"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeSuperseded:
		return "superseded"
	case OutcomeFailed:
		return "failed"
	case OutcomeDisposed:
		return "disposed"
	default:
		return "ignored"
	}
}

// Context describes the navigation currently displayed.
type Context struct {
	// URL is the canonical relative URL (path, query and fragment).
	URL string

	// Path is the canonical pathname.
	Path string

	// Query holds the parsed query parameters.
	Query query.Map

	// Match is the matched route, nil for the not-found page.
	Match *router.Match

	// Layout is the effective layout record.
	Layout *router.LayoutRecord

	// Seq is the navigation's sequence number.
	Seq uint64
}

// Route returns the matched route, or nil.
func (c *Context) Route() *router.Route {
	if c == nil || c.Match == nil {
		return nil
	}
	return c.Match.Route
}

// Params returns a copy of the route parameters; empty for not-found.
func (c *Context) Params() map[string]string {
	out := make(map[string]string)
	if c != nil && c.Match != nil {
		for k, v := range c.Match.Params {
			out[k] = v
		}
	}
	return out
}
