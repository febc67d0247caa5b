package navigator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/approuter/pkg/component"
	"github.com/vango-dev/approuter/pkg/query"
	"github.com/vango-dev/approuter/pkg/routepath"
	"github.com/vango-dev/approuter/pkg/router"
)

const tracerName = "approuter/navigator"

var (
	// ErrAlreadyInitialized is returned by a second Init.
	ErrAlreadyInitialized = errors.New("navigator already initialized")

	// ErrDisposed is returned by Init after Dispose.
	ErrDisposed = errors.New("navigator disposed")

	// ErrLoadFailure wraps every page or layout load error.
	ErrLoadFailure = errors.New("load failure")

	// ErrNoLoader reports a page or layout file without a registered
	// implementation.
	ErrNoLoader = errors.New("no implementation registered")

	// ErrCrossOrigin reports a programmatic navigation to another origin.
	ErrCrossOrigin = errors.New("cross-origin navigation")
)

// History is the session history the navigator updates on mount.
type History interface {
	PushState(url string)
	ReplaceState(url string)
}

// Outlet receives each newly mounted layout together with the sequence
// number of the navigation mounting it. Reused layouts are not mounted
// again; their content changes through SetPageContent.
type Outlet interface {
	Mount(seq uint64, layout router.Layout)
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// WithMetrics records navigations into m. Share one Metrics between
// navigators registered with the same registry.
func WithMetrics(m *Metrics) Option {
	return func(n *Navigator) {
		n.metrics = m
	}
}

// WithTracer sets the tracer used for navigation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(n *Navigator) {
		n.tracer = tracer
	}
}

// WithStateObserver registers fn for state transitions of the latest
// navigation. Observers run like event handlers, outside the lock.
func WithStateObserver(fn func(Transition)) Option {
	return func(n *Navigator) {
		n.observers = append(n.observers, fn)
	}
}

// WithOrigin sets the origin ("https://example.com") used to decide which
// absolute links are same-origin. Without it only relative hrefs are
// intercepted.
func WithOrigin(origin string) Option {
	return func(n *Navigator) {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			n.origin = nil
			return
		}
		n.origin = &url.URL{Scheme: strings.ToLower(u.Scheme), Host: u.Host}
	}
}

type historyMode int

const (
	historyPush historyMode = iota
	historyReplace
	historyNone
)

func (m historyMode) String() string {
	switch m {
	case historyReplace:
		return "replace"
	case historyNone:
		return "none"
	default:
		return "push"
	}
}

// Navigator is the navigation state machine for one outlet.
// All methods are safe for concurrent use.
type Navigator struct {
	history   History
	outlet    Outlet
	origin    *url.URL
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	observers []func(Transition)

	// seq is the highest sequence number issued.
	seq atomic.Uint64

	mu          sync.Mutex
	table       *router.Table
	state       State
	current     *Context
	page        router.Page
	layout      router.Layout
	layoutRec   *router.LayoutRecord
	lastErr     error
	handlers    map[string][]*subscription
	queue       []func()
	flushing    bool
	initialized bool
	disposed    bool
}

// New creates a navigator over table. history may be nil when the host has
// no session history.
func New(table *router.Table, history History, outlet Outlet, opts ...Option) *Navigator {
	n := &Navigator{
		history:  history,
		outlet:   outlet,
		table:    table,
		handlers: make(map[string][]*subscription),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	n.logger = n.logger.With("component", "navigator")
	if n.tracer == nil {
		n.tracer = otel.Tracer(tracerName)
	}
	if n.history == nil {
		n.history = nopHistory{}
	}
	n.metrics.navigatorCreated()
	return n
}

type nopHistory struct{}

func (nopHistory) PushState(string)    {}
func (nopHistory) ReplaceState(string) {}

// Init performs the initial navigation for url, replacing the current
// history entry instead of pushing one.
func (n *Navigator) Init(ctx context.Context, rawURL string) (Outcome, error) {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return OutcomeDisposed, ErrDisposed
	}
	if n.initialized {
		n.mu.Unlock()
		return OutcomeIgnored, ErrAlreadyInitialized
	}
	n.initialized = true
	n.mu.Unlock()

	return n.navigate(ctx, rawURL, historyReplace), nil
}

// Navigate navigates to url and pushes a history entry on mount.
func (n *Navigator) Navigate(ctx context.Context, rawURL string) Outcome {
	return n.navigate(ctx, rawURL, historyPush)
}

// Replace navigates to url and replaces the current history entry on mount.
func (n *Navigator) Replace(ctx context.Context, rawURL string) Outcome {
	return n.navigate(ctx, rawURL, historyReplace)
}

// PopState handles a back/forward traversal to url. History is left alone.
func (n *Navigator) PopState(ctx context.Context, rawURL string) Outcome {
	return n.navigate(ctx, rawURL, historyNone)
}

// HandleClick intercepts same-origin anchor clicks. It reports whether the
// click was intercepted; the host must cancel the default action when it
// was.
func (n *Navigator) HandleClick(ctx context.Context, c Click) (bool, Outcome) {
	n.mu.Lock()
	disposed := n.disposed
	n.mu.Unlock()
	if disposed {
		return false, OutcomeDisposed
	}

	target, ok := n.intercept(c)
	if !ok {
		return false, OutcomeIgnored
	}
	return true, n.navigate(ctx, target, historyPush)
}

// Dispose stops the navigator. In-flight navigations are discarded, every
// handler is dropped and later entry points return OutcomeDisposed.
func (n *Navigator) Dispose() {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return
	}
	n.disposed = true
	n.seq.Add(1)
	for _, subs := range n.handlers {
		for _, s := range subs {
			s.active.Store(false)
		}
	}
	n.handlers = make(map[string][]*subscription)
	n.queue = nil
	n.state = StateIdle
	n.mu.Unlock()

	n.metrics.navigatorDisposed()
	n.logger.Debug("navigator disposed")
}

// SetTable swaps the route table for later navigations. The mounted page
// stays until the next navigation.
func (n *Navigator) SetTable(table *router.Table) {
	n.mu.Lock()
	n.table = table
	n.mu.Unlock()
}

// Table returns the current route table.
func (n *Navigator) Table() *router.Table {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.table
}

// Current returns the navigation context on display, or nil before the
// first mount.
func (n *Navigator) Current() *Context {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// LastError returns the error of the latest navigation when it failed, and
// nil once a later navigation commits.
func (n *Navigator) LastError() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastErr
}

// State returns the state of the latest navigation.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// navigation carries one navigation through the state machine.
type navigation struct {
	seq    uint64
	mode   historyMode
	table  *router.Table
	loc    routepath.Location
	query  query.Map
	match  *router.Match
	layout *router.LayoutRecord
}

func (nav *navigation) params() map[string]string {
	out := make(map[string]string)
	if nav.match != nil {
		for k, v := range nav.match.Params {
			out[k] = v
		}
	}
	return out
}

func (nav *navigation) context() *Context {
	return &Context{
		URL:    nav.loc.String(),
		Path:   nav.loc.Path,
		Query:  nav.query.Clone(),
		Match:  nav.match,
		Layout: nav.layout,
		Seq:    nav.seq,
	}
}

func (nav *navigation) event() Event {
	ev := Event{
		Path:     nav.loc.Path,
		Params:   nav.params(),
		Query:    nav.query.Clone(),
		URL:      nav.loc.String(),
		Seq:      nav.seq,
		NotFound: nav.match == nil,
	}
	if nav.match != nil {
		ev.Pattern = nav.match.Route.Pattern
	}
	return ev
}

func (n *Navigator) navigate(ctx context.Context, raw string, mode historyMode) Outcome {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return OutcomeDisposed
	}
	nav := &navigation{
		seq:   n.seq.Add(1),
		mode:  mode,
		table: n.table,
	}
	n.mu.Unlock()

	start := time.Now()
	n.metrics.started()

	ctx, span := n.tracer.Start(ctx, "approuter.navigate",
		trace.WithAttributes(
			attribute.String("approuter.url", raw),
			attribute.Int64("approuter.seq", int64(nav.seq)),
			attribute.String("approuter.history", mode.String()),
		),
	)
	defer span.End()

	outcome := n.run(ctx, nav, raw)

	span.SetAttributes(attribute.String("approuter.outcome", outcome.String()))
	if nav.match != nil {
		span.SetAttributes(attribute.String("approuter.route", nav.match.Route.Pattern))
	}
	if outcome == OutcomeFailed {
		span.SetStatus(codes.Error, "navigation failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	elapsed := time.Since(start)
	n.metrics.finished(outcome, elapsed)
	n.logger.Debug("navigation finished",
		"url", raw,
		"seq", nav.seq,
		"outcome", outcome.String(),
		"duration", elapsed)
	return outcome
}

func (n *Navigator) run(ctx context.Context, nav *navigation, raw string) Outcome {
	n.transition(nav.seq, StateMatching)

	rel := raw
	if isAbsolute(raw) {
		var ok bool
		if rel, ok = n.sameOrigin(raw); !ok {
			n.logger.Warn("navigation refused", "url", raw, "error", ErrCrossOrigin)
			n.recordError(nav.seq, fmt.Errorf("%w: %s", ErrCrossOrigin, raw))
			n.transition(nav.seq, StateIdle)
			return OutcomeFailed
		}
	}
	rel = n.resolve(rel)

	loc, err := routepath.Parse(rel)
	if err != nil {
		rest, fragment, _ := strings.Cut(rel, "#")
		path, rawQuery := routepath.SplitPathAndQuery(rest)
		loc = routepath.Location{Path: path, RawQuery: rawQuery, Fragment: fragment}
	}
	nav.loc = loc
	nav.query = query.Parse(loc.RawQuery)

	if err == nil && nav.table != nil {
		if m, ok := nav.table.Match(loc.Path); ok {
			nav.match = m
		}
	}
	if nav.match == nil {
		return n.runNotFound(ctx, nav)
	}

	n.transition(nav.seq, StateResolvingLayout)
	nav.layout = nav.table.ResolveLayout(nav.match.Route)

	if outcome, ok := n.updateInPlace(nav); ok {
		return outcome
	}

	n.transition(nav.seq, StateLoading)
	layout, reused, err := n.loadLayout(ctx, nav)
	if err != nil {
		return n.fail(nav, "layout", err)
	}
	page, err := loadPage(ctx, nav.match.Route)
	if err != nil {
		return n.fail(nav, "page", err)
	}
	return n.mount(nav, layout, reused, page, OutcomeMounted)
}

func (n *Navigator) runNotFound(ctx context.Context, nav *navigation) Outcome {
	n.transition(nav.seq, StateNotFound)

	if nav.table != nil {
		nav.layout = nav.table.RootLayout()
	} else {
		nav.layout = &router.LayoutRecord{Default: true}
	}

	layout, reused, err := n.loadLayout(ctx, nav)
	if err != nil {
		return n.fail(nav, "layout", err)
	}
	page := n.loadNotFoundPage(ctx, nav.table)
	return n.mount(nav, layout, reused, page, OutcomeNotFound)
}

// updateInPlace re-renders the mounted page with new parameters when the
// pathname, route and layout are all unchanged.
func (n *Navigator) updateInPlace(nav *navigation) (Outcome, bool) {
	n.mu.Lock()
	cur := n.current
	if n.disposed || cur == nil || n.page == nil ||
		cur.Path != nav.loc.Path || cur.Route() != nav.match.Route || n.layoutRec != nav.layout {
		n.mu.Unlock()
		return 0, false
	}
	if n.seq.Load() != nav.seq {
		n.mu.Unlock()
		return OutcomeSuperseded, true
	}

	n.setStateLocked(nav.seq, StateMounting)
	inject(n.page, nav)
	n.layout.SetPageContent(n.page.Render())
	n.commitLocked(nav)
	n.mu.Unlock()

	n.flush()
	return OutcomeUpdated, true
}

// loadLayout returns the mounted layout instance when the record is
// unchanged, otherwise a fresh instance.
func (n *Navigator) loadLayout(ctx context.Context, nav *navigation) (router.Layout, bool, error) {
	n.mu.Lock()
	if n.layout != nil && n.layoutRec == nav.layout {
		layout := n.layout
		n.mu.Unlock()
		return layout, true, nil
	}
	n.mu.Unlock()

	rec := nav.layout
	if rec.Loader == nil {
		if rec.Default {
			return component.NewDefaultLayout(), false, nil
		}
		return nil, false, fmt.Errorf("%w: layout %s: %w", ErrLoadFailure, rec.Source, ErrNoLoader)
	}

	layout, err := rec.Loader(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("%w: layout %s: %w", ErrLoadFailure, rec.Source, err)
	}
	if layout == nil {
		return nil, false, fmt.Errorf("%w: layout %s: loader returned nil", ErrLoadFailure, rec.Source)
	}
	return layout, false, nil
}

func loadPage(ctx context.Context, route *router.Route) (router.Page, error) {
	if route.Loader == nil {
		return nil, fmt.Errorf("%w: page %s: %w", ErrLoadFailure, route.Source, ErrNoLoader)
	}
	page, err := route.Loader(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: page %s: %w", ErrLoadFailure, route.Source, err)
	}
	if page == nil {
		return nil, fmt.Errorf("%w: page %s: loader returned nil", ErrLoadFailure, route.Source)
	}
	return page, nil
}

// loadNotFoundPage loads the tree's not-found page, falling back to the
// built-in one. It never fails.
func (n *Navigator) loadNotFoundPage(ctx context.Context, table *router.Table) router.Page {
	if table != nil {
		if nf := table.NotFound(); nf != nil && nf.Loader != nil {
			page, err := nf.Loader(ctx)
			if err == nil && page != nil {
				return page
			}
			n.logger.Warn("not-found page failed to load, using built-in",
				"source", nf.Source,
				"error", err)
		}
	}
	return component.NewNotFoundPage()
}

func (n *Navigator) fail(nav *navigation, unit string, err error) Outcome {
	if n.seq.Load() != nav.seq {
		n.logger.Debug("stale navigation failed", "url", nav.loc.String(), "seq", nav.seq, "error", err)
		return OutcomeSuperseded
	}
	n.metrics.loadFailed(unit)
	n.recordError(nav.seq, err)
	n.logger.Warn("navigation aborted",
		"url", nav.loc.String(),
		"seq", nav.seq,
		"unit", unit,
		"error", err)
	n.transition(nav.seq, StateIdle)
	return OutcomeFailed
}

// mount places page into layout, mounts a new layout into the outlet and
// records the navigation, provided nav is still the latest.
func (n *Navigator) mount(nav *navigation, layout router.Layout, reused bool, page router.Page, outcome Outcome) Outcome {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		return OutcomeDisposed
	}
	if n.seq.Load() != nav.seq {
		n.mu.Unlock()
		n.logger.Debug("navigation superseded", "url", nav.loc.String(), "seq", nav.seq)
		return OutcomeSuperseded
	}

	if outcome != OutcomeNotFound {
		n.setStateLocked(nav.seq, StateMounting)
	}
	inject(page, nav)
	layout.SetPageContent(page.Render())
	if !reused {
		n.outlet.Mount(nav.seq, layout)
	}
	n.page = page
	n.layout = layout
	n.layoutRec = nav.layout
	n.commitLocked(nav)
	n.mu.Unlock()

	n.flush()
	return outcome
}

// commitLocked updates history, swaps the current context, queues the
// route-change event and returns to idle.
func (n *Navigator) commitLocked(nav *navigation) {
	target := nav.loc.String()
	switch nav.mode {
	case historyPush:
		if n.current == nil || n.current.URL != target {
			n.history.PushState(target)
		}
	case historyReplace:
		n.history.ReplaceState(target)
	}
	n.current = nav.context()
	n.lastErr = nil
	n.emitLocked(EventRouteChange, nav.event())
	n.setStateLocked(nav.seq, StateIdle)
}

func (n *Navigator) recordError(seq uint64, err error) {
	n.mu.Lock()
	if seq == n.seq.Load() {
		n.lastErr = err
	}
	n.mu.Unlock()
}

func inject(page router.Page, nav *navigation) {
	page.Set(component.KeyRouteParams, nav.params())
	page.Set(component.KeyQueryParams, nav.query.Clone())
	page.Set(component.KeyPathname, nav.loc.Path)
}

func (n *Navigator) transition(seq uint64, to State) {
	n.mu.Lock()
	n.setStateLocked(seq, to)
	n.mu.Unlock()
	n.flush()
}

// setStateLocked moves the state machine for the latest navigation; older
// navigations do not affect it.
func (n *Navigator) setStateLocked(seq uint64, to State) {
	if n.disposed || seq != n.seq.Load() || n.state == to {
		return
	}
	tr := Transition{Seq: seq, From: n.state, To: to}
	n.state = to
	if len(n.observers) == 0 {
		return
	}
	observers := n.observers
	n.queue = append(n.queue, func() {
		for _, fn := range observers {
			fn(tr)
		}
	})
}
