package navigator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/approuter/pkg/component"
	"github.com/vango-dev/approuter/pkg/router"
)

type fakeHistory struct {
	mu      sync.Mutex
	entries []string
}

func (h *fakeHistory) PushState(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, "push "+url)
}

func (h *fakeHistory) ReplaceState(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, "replace "+url)
}

func (h *fakeHistory) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

type fakeOutlet struct {
	mu     sync.Mutex
	mounts []router.Layout
}

func (o *fakeOutlet) Mount(seq uint64, layout router.Layout) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mounts = append(o.mounts, layout)
}

func (o *fakeOutlet) Mounts() []router.Layout {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]router.Layout(nil), o.mounts...)
}

func (o *fakeOutlet) HTML() string {
	mounts := o.Mounts()
	if len(mounts) == 0 {
		return ""
	}
	return mounts[len(mounts)-1].Render()
}

// pageTracker records every page instance its loaders create.
type pageTracker struct {
	mu    sync.Mutex
	pages []*component.Page
}

func (pt *pageTracker) loader(name string) router.PageLoader {
	return func(ctx context.Context) (router.Page, error) {
		p := component.NewPage(func(p *component.Props) string {
			params := p.RouteParams()
			keys := make([]string, 0, len(params))
			for k := range params {
				keys = append(keys, k+"="+params[k])
			}
			sort.Strings(keys)
			return fmt.Sprintf("%s[%s](%s)", name, strings.Join(keys, ","), p.Query().Encode())
		})
		pt.mu.Lock()
		pt.pages = append(pt.pages, p)
		pt.mu.Unlock()
		return p, nil
	}
}

func (pt *pageTracker) Count() int {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return len(pt.pages)
}

func wrap(name string) router.LayoutLoader {
	return component.LayoutLoader(func(content string) string {
		return "<" + name + ">" + content + "</" + name + ">"
	})
}

type fixture struct {
	nav     *Navigator
	history *fakeHistory
	outlet  *fakeOutlet
	pages   *pageTracker
	events  *[]Event
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newFixture(t *testing.T, reg router.Registry, opts ...Option) *fixture {
	t.Helper()
	pt := &pageTracker{}

	files := []string{
		"app/layout.js",
		"app/page.js",
		"app/user/[id]/page.js",
		"app/user/settings/page.js",
		"app/auth/layout.js",
		"app/auth/login/page.js",
		"app/broken/page.js",
		"app/missing/page.js",
		"app/slow/page.js",
	}
	full := router.Registry{
		Pages: map[string]router.PageLoader{
			"app/page.js":               pt.loader("home"),
			"app/user/[id]/page.js":     pt.loader("user"),
			"app/user/settings/page.js": pt.loader("settings"),
			"app/auth/login/page.js":    pt.loader("login"),
			"app/broken/page.js": func(ctx context.Context) (router.Page, error) {
				return nil, errors.New("boom")
			},
		},
		Layouts: map[string]router.LayoutLoader{
			"app/layout.js":      wrap("root"),
			"app/auth/layout.js": wrap("auth"),
		},
	}
	for k, v := range reg.Pages {
		full.Pages[k] = v
		files = append(files, k)
	}
	for k, v := range reg.Layouts {
		full.Layouts[k] = v
		files = append(files, k)
	}

	table, err := router.Build(files, full, router.WithRoot("app"), router.WithLogger(quiet))
	require.NoError(t, err)

	h := &fakeHistory{}
	o := &fakeOutlet{}
	nav := New(table, h, o, append([]Option{WithLogger(quiet)}, opts...)...)
	t.Cleanup(nav.Dispose)

	var mu sync.Mutex
	events := &[]Event{}
	nav.On(EventRouteChange, func(ev Event) {
		mu.Lock()
		*events = append(*events, ev)
		mu.Unlock()
	})

	return &fixture{nav: nav, history: h, outlet: o, pages: pt, events: events}
}

func TestNavigateMountsPageInLayout(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	outcome := f.nav.Navigate(ctx, "/user/123?tab=posts")
	assert.Equal(t, OutcomeMounted, outcome)

	require.Len(t, f.outlet.Mounts(), 1)
	assert.Equal(t, "<root>user[id=123](tab=posts)</root>", f.outlet.HTML())
	assert.Equal(t, []string{"push /user/123?tab=posts"}, f.history.Entries())

	require.Len(t, *f.events, 1)
	ev := (*f.events)[0]
	assert.Equal(t, "/user/123", ev.Path)
	assert.Equal(t, map[string]string{"id": "123"}, ev.Params)
	assert.Equal(t, "posts", ev.Query.Get("tab"))
	assert.Equal(t, "/user/[id]", ev.Pattern)
	assert.False(t, ev.NotFound)

	cur := f.nav.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "/user/[id]", cur.Route().Pattern)
	assert.Equal(t, "/user/123?tab=posts", cur.URL)
	assert.Equal(t, StateIdle, f.nav.State())
}

func TestQueryOnlyChangeUpdatesInPlace(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	require.Equal(t, OutcomeMounted, f.nav.Navigate(ctx, "/user/1?tab=a"))
	layout := f.outlet.Mounts()[0]

	assert.Equal(t, OutcomeUpdated, f.nav.Navigate(ctx, "/user/1?tab=b"))
	assert.Equal(t, OutcomeUpdated, f.nav.Navigate(ctx, "?tab=c"))

	mounts := f.outlet.Mounts()
	require.Len(t, mounts, 1, "layout must not be remounted")
	assert.Same(t, layout, mounts[0])
	assert.Equal(t, 1, f.pages.Count(), "page instance is reused")
	assert.Equal(t, "<root>user[id=1](tab=c)</root>", layout.Render())

	require.Len(t, *f.events, 3)
	assert.Equal(t, "b", (*f.events)[1].Query.Get("tab"))
	assert.Equal(t, "/user/1", (*f.events)[2].Path)
	assert.Equal(t, []string{
		"push /user/1?tab=a",
		"push /user/1?tab=b",
		"push /user/1?tab=c",
	}, f.history.Entries())
}

func TestSameURLDoesNotPushTwice(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	f.nav.Navigate(ctx, "/user/1")
	assert.Equal(t, OutcomeUpdated, f.nav.Navigate(ctx, "/user/1"))
	assert.Equal(t, []string{"push /user/1"}, f.history.Entries())
	assert.Len(t, *f.events, 2)
}

func TestSameLayoutKeepsLayoutInstance(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	f.nav.Navigate(ctx, "/user/1")
	assert.Equal(t, OutcomeMounted, f.nav.Navigate(ctx, "/user/2"))
	assert.Equal(t, OutcomeMounted, f.nav.Navigate(ctx, "/user/settings"))

	require.Len(t, f.outlet.Mounts(), 1)
	assert.Equal(t, 3, f.pages.Count())
	assert.Equal(t, "<root>settings[]()</root>", f.outlet.HTML())
}

func TestLayoutChangeRemounts(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	f.nav.Navigate(ctx, "/")
	f.nav.Navigate(ctx, "/auth/login")

	mounts := f.outlet.Mounts()
	require.Len(t, mounts, 2)
	assert.Equal(t, "<auth>login[]()</auth>", mounts[1].Render(), "nearest layout replaces the root layout")

	f.nav.Navigate(ctx, "/")
	assert.Len(t, f.outlet.Mounts(), 3)
}

func TestLatestNavigationWins(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	slow := func(ctx context.Context) (router.Page, error) {
		close(entered)
		<-release
		return component.NewPage(func(*component.Props) string { return "slow" }), nil
	}
	f := newFixture(t, router.Registry{Pages: map[string]router.PageLoader{"app/slow/page.js": slow}})
	ctx := context.Background()

	result := make(chan Outcome, 1)
	go func() {
		result <- f.nav.Navigate(ctx, "/slow")
	}()
	<-entered

	assert.Equal(t, OutcomeMounted, f.nav.Navigate(ctx, "/user/2"))
	close(release)
	assert.Equal(t, OutcomeSuperseded, <-result)

	assert.Equal(t, "<root>user[id=2]()</root>", f.outlet.HTML())
	assert.Len(t, f.outlet.Mounts(), 1)
	assert.Equal(t, []string{"push /user/2"}, f.history.Entries())
	require.Len(t, *f.events, 1)
	assert.Equal(t, "/user/2", (*f.events)[0].Path)
	assert.Equal(t, "/user/2", f.nav.Current().Path)
}

func TestUnknownPathMountsNotFound(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	var outcome Outcome
	assert.NotPanics(t, func() {
		outcome = f.nav.Navigate(ctx, "/does-not-exist?x=1")
	})
	assert.Equal(t, OutcomeNotFound, outcome)

	html := f.outlet.HTML()
	assert.True(t, strings.HasPrefix(html, "<root>"), "not-found renders inside the root layout")
	assert.Contains(t, html, "Page not found")
	assert.Contains(t, html, "/does-not-exist")

	require.Len(t, *f.events, 1)
	ev := (*f.events)[0]
	assert.True(t, ev.NotFound)
	assert.Equal(t, "/does-not-exist", ev.Path)
	assert.Empty(t, ev.Params)
	assert.Equal(t, "1", ev.Query.Get("x"))
	assert.Nil(t, f.nav.Current().Route())
}

func TestInvalidPathMountsNotFound(t *testing.T) {
	f := newFixture(t, router.Registry{})

	for _, p := range []string{`/a\b`, "/%zz", "/../etc"} {
		assert.Equal(t, OutcomeNotFound, f.nav.Navigate(context.Background(), p), p)
	}
}

func TestRegisteredNotFoundPage(t *testing.T) {
	pages := &pageTracker{}
	f := newFixture(t, router.Registry{Pages: map[string]router.PageLoader{
		"app/not-found.js": pages.loader("custom-404"),
	}})

	assert.Equal(t, OutcomeNotFound, f.nav.Navigate(context.Background(), "/nope?a=b"))
	assert.Equal(t, "<root>custom-404[](a=b)</root>", f.outlet.HTML())
}

func TestLoadFailureKeepsPreviousMount(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	f.nav.Navigate(ctx, "/user/1")
	before := f.outlet.HTML()

	assert.Equal(t, OutcomeFailed, f.nav.Navigate(ctx, "/broken"))
	assert.Equal(t, OutcomeFailed, f.nav.Navigate(ctx, "/missing"), "a page without implementation fails to load")

	assert.Len(t, f.outlet.Mounts(), 1)
	assert.Equal(t, before, f.outlet.HTML())
	assert.Equal(t, "/user/1", f.nav.Current().Path)
	assert.Len(t, *f.events, 1)
	assert.Equal(t, []string{"push /user/1"}, f.history.Entries())
	assert.Equal(t, StateIdle, f.nav.State())
}

func TestLayoutLoadFailure(t *testing.T) {
	f := newFixture(t, router.Registry{Layouts: map[string]router.LayoutLoader{
		"app/auth/login/layout.js": func(ctx context.Context) (router.Layout, error) {
			return nil, errors.New("layout boom")
		},
	}})

	assert.Equal(t, OutcomeFailed, f.nav.Navigate(context.Background(), "/auth/login"))
	assert.Empty(t, f.outlet.Mounts())
	assert.Nil(t, f.nav.Current())
}

func TestDefaultRootLayout(t *testing.T) {
	pt := &pageTracker{}
	table, err := router.Build([]string{"page.js"}, router.Registry{
		Pages: map[string]router.PageLoader{"page.js": pt.loader("home")},
	}, router.WithLogger(quiet))
	require.NoError(t, err)

	o := &fakeOutlet{}
	nav := New(table, nil, o, WithLogger(quiet))
	defer nav.Dispose()

	assert.Equal(t, OutcomeMounted, nav.Navigate(context.Background(), "/"))
	assert.Contains(t, o.HTML(), "data-outlet")
	assert.Contains(t, o.HTML(), "home[]()")
}

func TestPopStateLeavesHistoryAlone(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	f.nav.Navigate(ctx, "/user/1")
	f.nav.Navigate(ctx, "/user/2")
	assert.Equal(t, OutcomeMounted, f.nav.PopState(ctx, "/user/1"))

	assert.Equal(t, []string{"push /user/1", "push /user/2"}, f.history.Entries())
	assert.Equal(t, "/user/1", f.nav.Current().Path)
	assert.Len(t, *f.events, 3)
}

func TestInitReplacesOnce(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	outcome, err := f.nav.Init(ctx, "/user/7")
	require.NoError(t, err)
	assert.Equal(t, OutcomeMounted, outcome)
	assert.Equal(t, []string{"replace /user/7"}, f.history.Entries())

	_, err = f.nav.Init(ctx, "/")
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	assert.Equal(t, OutcomeMounted, f.nav.Replace(ctx, "/user/settings"))
	assert.Equal(t, []string{"replace /user/7", "replace /user/settings"}, f.history.Entries())
}

func TestDispose(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	f.nav.Navigate(ctx, "/")
	f.nav.Dispose()
	f.nav.Dispose()

	assert.Equal(t, OutcomeDisposed, f.nav.Navigate(ctx, "/user/1"))
	assert.Equal(t, OutcomeDisposed, f.nav.PopState(ctx, "/user/1"))
	intercepted, outcome := f.nav.HandleClick(ctx, Click{Href: "/user/1"})
	assert.False(t, intercepted)
	assert.Equal(t, OutcomeDisposed, outcome)
	_, err := f.nav.Init(ctx, "/")
	assert.ErrorIs(t, err, ErrDisposed)

	assert.Len(t, f.outlet.Mounts(), 1)
	assert.Len(t, *f.events, 1)
}

func TestDisposeDiscardsInFlightNavigation(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	slow := func(ctx context.Context) (router.Page, error) {
		close(entered)
		<-release
		return component.NewPage(nil), nil
	}
	f := newFixture(t, router.Registry{Pages: map[string]router.PageLoader{"app/slow/page.js": slow}})

	result := make(chan Outcome, 1)
	go func() { result <- f.nav.Navigate(context.Background(), "/slow") }()
	<-entered
	f.nav.Dispose()
	close(release)

	assert.Equal(t, OutcomeDisposed, <-result)
	assert.Empty(t, f.outlet.Mounts())
	assert.Empty(t, *f.events)
}

func TestHandleClick(t *testing.T) {
	tests := []struct {
		name  string
		click Click
		want  bool
	}{
		{"relative", Click{Href: "/user/1"}, true},
		{"same origin absolute", Click{Href: "http://localhost:3000/user/1?x=1"}, true},
		{"other origin", Click{Href: "https://example.com/user/1"}, false},
		{"other scheme", Click{Href: "https://localhost:3000/user/1"}, false},
		{"mailto", Click{Href: "mailto:someone@example.com"}, false},
		{"fragment only", Click{Href: "#top"}, false},
		{"empty", Click{}, false},
		{"middle button", Click{Href: "/user/1", Button: 1}, false},
		{"ctrl", Click{Href: "/user/1", Ctrl: true}, false},
		{"meta", Click{Href: "/user/1", Meta: true}, false},
		{"shift", Click{Href: "/user/1", Shift: true}, false},
		{"alt", Click{Href: "/user/1", Alt: true}, false},
		{"download", Click{Href: "/user/1", Download: true}, false},
		{"blank target", Click{Href: "/user/1", Target: "_blank"}, false},
		{"self target", Click{Href: "/user/1", Target: "_self"}, true},
		{"external rel", Click{Href: "/user/1", Rel: "noopener external"}, false},
		{"prevented", Click{Href: "/user/1", DefaultPrevented: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, router.Registry{}, WithOrigin("http://localhost:3000"))

			intercepted, outcome := f.nav.HandleClick(context.Background(), tt.click)
			assert.Equal(t, tt.want, intercepted)
			if tt.want {
				assert.Equal(t, OutcomeMounted, outcome)
				assert.Len(t, f.history.Entries(), 1)
			} else {
				assert.Equal(t, OutcomeIgnored, outcome)
				assert.Empty(t, f.outlet.Mounts())
			}
		})
	}
}

func TestHandleClickResolvesRelativeHrefs(t *testing.T) {
	tests := []struct {
		from     string
		href     string
		wantPath string
		wantURL  string
	}{
		{"/user/settings", "42", "/user/42", "/user/42"},
		{"/user/settings", "./7?tab=a", "/user/7", "/user/7?tab=a"},
		{"/user/42", "settings", "/user/settings", "/user/settings"},
		{"/auth/login", "../user/9", "/user/9", "/user/9"},
		{"/user/settings", "../auth/login", "/auth/login", "/auth/login"},
		{"/user/42?tab=a", "?tab=b", "/user/42", "/user/42?tab=b"},
		{"/user/settings", "../../..", "/", "/"},
		{"", "user/5", "/user/5", "/user/5"},
	}

	for _, tt := range tests {
		t.Run(tt.from+" "+tt.href, func(t *testing.T) {
			f := newFixture(t, router.Registry{})
			ctx := context.Background()
			if tt.from != "" {
				require.Equal(t, OutcomeMounted, f.nav.Navigate(ctx, tt.from))
			}

			intercepted, _ := f.nav.HandleClick(ctx, Click{Href: tt.href})
			require.True(t, intercepted)
			cur := f.nav.Current()
			require.NotNil(t, cur)
			assert.Equal(t, tt.wantPath, cur.Path)
			assert.Equal(t, tt.wantURL, cur.URL)
		})
	}
}

func TestRelativeNavigateCapturesParams(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	f.nav.Navigate(ctx, "/user/settings")
	assert.Equal(t, OutcomeMounted, f.nav.Navigate(ctx, "42"))
	assert.Equal(t, map[string]string{"id": "42"}, f.nav.Current().Params())
	assert.Equal(t, "<root>user[id=42]()</root>", f.outlet.HTML())
}

func TestLastError(t *testing.T) {
	f := newFixture(t, router.Registry{}, WithOrigin("http://localhost:3000"))
	ctx := context.Background()

	assert.NoError(t, f.nav.LastError())

	assert.Equal(t, OutcomeFailed, f.nav.Navigate(ctx, "/broken"))
	err := f.nav.LastError()
	assert.ErrorIs(t, err, ErrLoadFailure)
	assert.ErrorContains(t, err, "boom")

	assert.Equal(t, OutcomeFailed, f.nav.Navigate(ctx, "/missing"))
	assert.ErrorIs(t, f.nav.LastError(), ErrNoLoader)

	assert.Equal(t, OutcomeFailed, f.nav.Navigate(ctx, "https://example.com/"))
	assert.ErrorIs(t, f.nav.LastError(), ErrCrossOrigin)

	assert.Equal(t, OutcomeMounted, f.nav.Navigate(ctx, "/user/1"))
	assert.NoError(t, f.nav.LastError())
}

func TestCrossOriginNavigateFails(t *testing.T) {
	f := newFixture(t, router.Registry{}, WithOrigin("http://localhost:3000"))

	assert.Equal(t, OutcomeFailed, f.nav.Navigate(context.Background(), "https://example.com/"))
	assert.Equal(t, OutcomeMounted, f.nav.Navigate(context.Background(), "http://localhost:3000/user/3"))
	assert.Equal(t, "/user/3", f.nav.Current().Path)
}

func TestEventHandlersOff(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	var calls []string
	off := f.nav.On(EventRouteChange, func(ev Event) { calls = append(calls, "a:"+ev.Path) })
	f.nav.On(EventRouteChange, func(ev Event) { calls = append(calls, "b:"+ev.Path) })

	f.nav.Navigate(ctx, "/")
	off()
	f.nav.Navigate(ctx, "/user/1")

	assert.Equal(t, []string{"a:/", "b:/", "b:/user/1"}, calls)
}

func TestHandlerMayNavigate(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	var paths []string
	redirected := false
	f.nav.On(EventRouteChange, func(ev Event) {
		paths = append(paths, ev.Path)
		if ev.Path == "/" && !redirected {
			redirected = true
			assert.Equal(t, OutcomeMounted, f.nav.Navigate(ctx, "/user/9"))
		}
	})

	f.nav.Navigate(ctx, "/")
	assert.Equal(t, []string{"/", "/user/9"}, paths)
	assert.Equal(t, "/user/9", f.nav.Current().Path)
}

func TestStateObserver(t *testing.T) {
	var mu sync.Mutex
	var states []State
	f := newFixture(t, router.Registry{}, WithStateObserver(func(tr Transition) {
		mu.Lock()
		states = append(states, tr.To)
		mu.Unlock()
	}))
	ctx := context.Background()

	f.nav.Navigate(ctx, "/user/1")
	assert.Equal(t, []State{StateMatching, StateResolvingLayout, StateLoading, StateMounting, StateIdle}, states)

	states = nil
	f.nav.Navigate(ctx, "/user/1?x=2")
	assert.Equal(t, []State{StateMatching, StateResolvingLayout, StateMounting, StateIdle}, states)

	states = nil
	f.nav.Navigate(ctx, "/nope")
	assert.Equal(t, []State{StateMatching, StateNotFound, StateIdle}, states)
}

func TestSetTable(t *testing.T) {
	f := newFixture(t, router.Registry{})
	ctx := context.Background()

	f.nav.Navigate(ctx, "/user/1")

	pt := &pageTracker{}
	table, err := router.Build([]string{"app/page.js", "app/layout.js"}, router.Registry{
		Pages:   map[string]router.PageLoader{"app/page.js": pt.loader("v2")},
		Layouts: map[string]router.LayoutLoader{"app/layout.js": wrap("root2")},
	}, router.WithRoot("app"), router.WithLogger(quiet))
	require.NoError(t, err)

	f.nav.SetTable(table)
	assert.Same(t, table, f.nav.Table())
	assert.Equal(t, OutcomeNotFound, f.nav.Navigate(ctx, "/user/1"))
	assert.Equal(t, OutcomeMounted, f.nav.Navigate(ctx, "/"))
	assert.Equal(t, "<root2>v2[]()</root2>", f.outlet.HTML())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, WithNamespace("test"))
	f := newFixture(t, router.Registry{}, WithMetrics(m))
	ctx := context.Background()

	f.nav.Navigate(ctx, "/user/1")
	f.nav.Navigate(ctx, "/user/1?x=1")
	f.nav.Navigate(ctx, "/nope")
	f.nav.Navigate(ctx, "/broken")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("mounted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loadFailures.WithLabelValues("page")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.active))

	f.nav.Dispose()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.active))
}
