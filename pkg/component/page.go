package component

import (
	"context"
	"sync/atomic"

	"github.com/vango-dev/approuter/pkg/router"
)

// RenderFunc renders a page from its props.
type RenderFunc func(p *Props) string

// Page is a router.Page backed by a render function.
type Page struct {
	Props

	render  RenderFunc
	renders atomic.Int64
}

// NewPage creates a page that renders with fn.
func NewPage(fn RenderFunc) *Page {
	return &Page{render: fn}
}

// Render renders the page with its current props.
func (p *Page) Render() string {
	p.renders.Add(1)
	if p.render == nil {
		return ""
	}
	return p.render(&p.Props)
}

// Renders reports how many times Render was called.
func (p *Page) Renders() int {
	return int(p.renders.Load())
}

// PageLoader returns a loader producing a fresh Page per navigation.
func PageLoader(fn RenderFunc) router.PageLoader {
	return func(ctx context.Context) (router.Page, error) {
		return NewPage(fn), nil
	}
}
