package component

import (
	"context"
	"sync"

	"github.com/rohanthewiz/element"

	"github.com/vango-dev/approuter/pkg/router"
)

// WrapFunc renders a layout around already rendered page content.
type WrapFunc func(content string) string

// Layout is a router.Layout backed by a wrap function. Page content set
// before or after mounting is picked up by the next Render.
type Layout struct {
	mu      sync.RWMutex
	wrap    WrapFunc
	content string
}

// NewLayout creates a layout that renders with fn.
func NewLayout(fn WrapFunc) *Layout {
	return &Layout{wrap: fn}
}

// SetPageContent replaces the content placed in the outlet.
func (l *Layout) SetPageContent(html string) {
	l.mu.Lock()
	l.content = html
	l.mu.Unlock()
}

// Content returns the current page content.
func (l *Layout) Content() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.content
}

// Render renders the layout with the current page content.
func (l *Layout) Render() string {
	content := l.Content()
	if l.wrap == nil {
		return content
	}
	return l.wrap(content)
}

// LayoutLoader returns a loader producing a fresh Layout per mount.
func LayoutLoader(fn WrapFunc) router.LayoutLoader {
	return func(ctx context.Context) (router.Layout, error) {
		return NewLayout(fn), nil
	}
}

// outlet renders the element that hosts page content.
type outlet struct {
	Content string
}

func (o outlet) Render(b *element.Builder) any {
	b.Div("data-outlet", "").T(o.Content)
	return nil
}

// Outlet wraps content in the data-outlet element, the marker hosts use to
// locate page content inside a rendered layout.
func Outlet(content string) string {
	b := element.NewBuilder()
	element.RenderComponents(b, outlet{Content: content})
	return b.String()
}

// NewDefaultLayout returns the layout used when the route tree has no root
// layout: a bare outlet.
func NewDefaultLayout() *Layout {
	return NewLayout(Outlet)
}
