package router

import (
	"context"
	"strings"
)

// Page is a mountable unit rendered for a matched route.
// The navigator injects "routeParams", "queryParams" and "pathname" through Set before
// the first Render.
type Page interface {
	Set(key string, value any)
	Get(key string) any
	Render() string
}

// Layout wraps page content. SetPageContent places the rendered page inside
// the layout's outlet element.
type Layout interface {
	Render() string
	SetPageContent(html string)
}

// PageLoader produces a fresh page instance. Loading may block (fetching or
// compiling the implementation); it is the navigator's only suspension point.
type PageLoader func(ctx context.Context) (Page, error)

// LayoutLoader produces a fresh layout instance.
type LayoutLoader func(ctx context.Context) (Layout, error)

// Registry binds source files to their implementations. Keys are the file
// paths handed to Build, e.g. "user/[id]/page.js" or "auth/layout.js".
type Registry struct {
	Pages   map[string]PageLoader
	Layouts map[string]LayoutLoader
}

// SegmentKind distinguishes route segment types.
type SegmentKind int

const (
	// Literal segments match their name verbatim.
	Literal SegmentKind = iota

	// Dynamic segments ([name]) capture exactly one path component.
	Dynamic

	// CatchAll segments ([...name]) capture every remaining component.
	CatchAll
)

func (k SegmentKind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case CatchAll:
		return "catch-all"
	default:
		return "literal"
	}
}

// Segment is one visible component of a route pattern.
type Segment struct {
	Kind SegmentKind

	// Value is the literal text or the parameter name.
	Value string
}

// String renders the segment in file-tree notation.
func (s Segment) String() string {
	switch s.Kind {
	case Dynamic:
		return "[" + s.Value + "]"
	case CatchAll:
		return "[..." + s.Value + "]"
	default:
		return s.Value
	}
}

// Route is a compiled page route. Routes are immutable once the table is built.
type Route struct {
	// Pattern is the route identity, e.g. "/user/[id]".
	Pattern string

	// Segments are the visible segments; organization folders are elided.
	Segments []Segment

	// Dir is the page's own directory ("" for the root).
	Dir string

	// Lineage lists directories from the root ("") down to Dir, including
	// organization folders.
	Lineage []string

	// Source is the file that declared the page.
	Source string

	// Loader creates page instances. It is nil when no implementation was
	// registered for Source.
	Loader PageLoader

	// Params lists parameter names in path order.
	Params []string
}

// Dynamic reports how many non-literal segments the route has.
func (r *Route) Dynamic() int {
	n := 0
	for _, s := range r.Segments {
		if s.Kind != Literal {
			n++
		}
	}
	return n
}

// shape is the pattern with parameter names erased; two routes with the same
// shape match exactly the same pathnames.
func (r *Route) shape() string {
	var b strings.Builder
	for _, s := range r.Segments {
		b.WriteByte('/')
		switch s.Kind {
		case Dynamic:
			b.WriteString("[]")
		case CatchAll:
			b.WriteString("[...]")
		default:
			b.WriteString(s.Value)
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// LayoutRecord binds a directory to its layout implementation.
type LayoutRecord struct {
	// Dir is the directory declaring the layout ("" for the root).
	Dir string

	// Source is the layout file. Empty for the root default.
	Source string

	// Loader creates layout instances. Nil for the root default.
	Loader LayoutLoader

	// Default marks the synthetic root record used when the tree has no
	// root layout file.
	Default bool
}

// Match is the result of matching a pathname.
type Match struct {
	Route  *Route
	Params map[string]string
}
