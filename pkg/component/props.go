package component

import (
	"sync"

	"github.com/vango-dev/approuter/pkg/query"
)

// Keys injected by the navigator before a page renders.
const (
	KeyRouteParams = "routeParams"
	KeyQueryParams = "queryParams"
	KeyPathname    = "pathname"
)

// Props is a concurrency-safe property store implementing the Set/Get half
// of router.Page. The zero value is ready to use.
type Props struct {
	mu     sync.RWMutex
	values map[string]any
}

// Set stores value under key, replacing any previous value.
func (p *Props) Set(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.values == nil {
		p.values = make(map[string]any)
	}
	p.values[key] = value
}

// Get returns the value stored under key, or nil.
func (p *Props) Get(key string) any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.values[key]
}

// RouteParams returns the injected route parameters. It never returns nil.
func (p *Props) RouteParams() map[string]string {
	if params, ok := p.Get(KeyRouteParams).(map[string]string); ok && params != nil {
		return params
	}
	return map[string]string{}
}

// Query returns the injected query parameters.
func (p *Props) Query() query.Map {
	q, _ := p.Get(KeyQueryParams).(query.Map)
	return q
}

// Pathname returns the injected canonical pathname.
func (p *Props) Pathname() string {
	s, _ := p.Get(KeyPathname).(string)
	return s
}
