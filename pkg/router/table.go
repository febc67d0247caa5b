package router

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/vango-dev/approuter/pkg/routepath"
)

// DefaultExtension is the page and layout file extension used when no
// WithExtensions option is given.
const DefaultExtension = ".js"

// ErrMissingParam is returned by Route.Path when a parameter has no value.
var ErrMissingParam = errors.New("missing route parameter")

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	root       string
	extensions []string
	logger     *slog.Logger
}

// WithRoot treats dir as the app root: only files below it are considered
// and their paths are interpreted relative to it.
//
//	router.Build(files, reg, router.WithRoot("app"))
func WithRoot(dir string) Option {
	return func(o *buildOptions) {
		o.root = NormalizeFile(dir)
	}
}

// WithExtensions sets the recognized page/layout file extensions.
func WithExtensions(exts ...string) Option {
	return func(o *buildOptions) {
		o.extensions = nil
		for _, ext := range exts {
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			o.extensions = append(o.extensions, ext)
		}
	}
}

// WithLogger sets the logger that receives build warnings. A nil logger
// keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *buildOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Table is the compiled, immutable route table.
// It is safe for concurrent use.
type Table struct {
	root      *node
	routes    []*Route
	byPattern map[string]*Route
	layouts   map[string]*LayoutRecord
	notFound  *Route
	errs      *BuildErrors
}

// Build compiles file paths into a route table, binding each page and layout
// to its loader in reg.
//
// Files are scanned in lexicographic order. Rejected entries (ambiguous
// pages, duplicate parameter names, duplicate patterns, malformed segments)
// are logged, left out of the table and reported together as *BuildErrors;
// the returned table is usable either way.
func Build(files []string, reg Registry, opts ...Option) (*Table, error) {
	options := buildOptions{
		extensions: []string{DefaultExtension},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if len(options.extensions) == 0 {
		options.extensions = []string{DefaultExtension}
	}
	logger := options.logger.With("component", "router")

	t := &Table{
		root:      newNode(""),
		byPattern: make(map[string]*Route),
		layouts:   make(map[string]*LayoutRecord),
	}
	var errs []*BuildError

	normalized := make([]string, 0, len(files))
	seenFile := make(map[string]bool, len(files))
	for _, f := range files {
		f = NormalizeFile(f)
		if f == "" || seenFile[f] {
			continue
		}
		seenFile[f] = true
		normalized = append(normalized, f)
	}
	sort.Strings(normalized)

	pages := make(map[string][]Entry)
	for _, file := range normalized {
		rel, ok := relativeTo(file, options.root)
		if !ok {
			continue
		}
		entry, ok := Classify(rel, options.extensions)
		if !ok {
			continue
		}
		entry.File = file

		switch entry.Kind {
		case EntryPage:
			pages[entry.Dir] = append(pages[entry.Dir], entry)

		case EntryLayout:
			if existing, ok := t.layouts[entry.Dir]; ok {
				errs = append(errs, &BuildError{
					Kind:    ErrAmbiguousRoute,
					Message: fmt.Sprintf("%s has more than one layout file", displayDir(entry.Dir)),
					Dir:     entry.Dir,
					Files:   []string{existing.Source, entry.File},
				})
				continue
			}
			t.layouts[entry.Dir] = &LayoutRecord{
				Dir:    entry.Dir,
				Source: entry.File,
				Loader: reg.Layouts[entry.File],
			}

		case EntryNotFound:
			if t.notFound != nil {
				errs = append(errs, &BuildError{
					Kind:    ErrAmbiguousRoute,
					Message: "more than one not-found page",
					Files:   []string{t.notFound.Source, entry.File},
				})
				continue
			}
			t.notFound = &Route{
				Lineage: []string{""},
				Source:  entry.File,
				Loader:  reg.Pages[entry.File],
			}
		}
	}

	if _, ok := t.layouts[""]; !ok {
		t.layouts[""] = &LayoutRecord{Default: true}
	}

	dirs := make([]string, 0, len(pages))
	for dir := range pages {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	shapes := make(map[string]*Route)
	for _, dir := range dirs {
		entries := pages[dir]
		if len(entries) > 1 {
			files := make([]string, len(entries))
			for i, e := range entries {
				files[i] = e.File
			}
			errs = append(errs, &BuildError{
				Kind:    ErrAmbiguousRoute,
				Message: fmt.Sprintf("%s has more than one page file", displayDir(dir)),
				Dir:     dir,
				Files:   files,
			})
			continue
		}
		entry := entries[0]

		segments, lineage, err := convertDir(dir)
		if err != nil {
			kind := ErrInvalidSegment
			if errors.Is(err, ErrDuplicateParam) {
				kind = ErrDuplicateParam
			}
			errs = append(errs, &BuildError{
				Kind:    kind,
				Message: err.Error(),
				Dir:     dir,
				Files:   []string{entry.File},
			})
			continue
		}

		route := &Route{
			Pattern:  patternOf(segments),
			Segments: segments,
			Dir:      dir,
			Lineage:  lineage,
			Source:   entry.File,
			Loader:   reg.Pages[entry.File],
			Params:   paramNames(segments),
		}

		if first, ok := shapes[route.shape()]; ok {
			errs = append(errs, &BuildError{
				Kind:    ErrDuplicateRoute,
				Message: fmt.Sprintf("%s is already served by %s", route.Pattern, first.Source),
				Dir:     dir,
				Pattern: route.Pattern,
				Files:   []string{first.Source, entry.File},
			})
			continue
		}
		shapes[route.shape()] = route

		t.root.insert(route).route = route
		t.routes = append(t.routes, route)
		t.byPattern[route.Pattern] = route
	}

	for _, e := range errs {
		logger.Warn("route rejected",
			"kind", e.Kind.Error(),
			"dir", e.Dir,
			"files", e.Files,
			"error", e.Message)
	}
	logger.Debug("route table built",
		"routes", len(t.routes),
		"layouts", len(t.layouts),
		"errors", len(errs))

	if len(errs) > 0 {
		t.errs = &BuildErrors{Errors: errs}
		return t, t.errs
	}
	return t, nil
}

func relativeTo(file, root string) (string, bool) {
	if root == "" {
		return file, true
	}
	if !strings.HasPrefix(file, root+"/") {
		return "", false
	}
	return strings.TrimPrefix(file, root+"/"), true
}

func displayDir(dir string) string {
	if dir == "" {
		return "the root directory"
	}
	return dir
}

// Routes returns the routes in discovery order.
func (t *Table) Routes() []*Route {
	return append([]*Route(nil), t.routes...)
}

// Route returns the route with the given pattern, or nil.
func (t *Table) Route(pattern string) *Route {
	return t.byPattern[pattern]
}

// NotFound returns the registered fallback page, or nil.
func (t *Table) NotFound() *Route {
	return t.notFound
}

// Errors returns the build errors, or nil for a clean build.
func (t *Table) Errors() *BuildErrors {
	return t.errs
}

// Match finds the best route for pathname and extracts its parameters.
// Pathnames are canonicalized first. An invalid or unmatched pathname
// returns false; Match never panics on user input.
func (t *Table) Match(pathname string) (*Match, bool) {
	canonical, err := routepath.CanonicalizePath(pathname)
	if err != nil {
		return nil, false
	}

	route, values, ok := t.root.match(routepath.Split(canonical), nil)
	if !ok || len(values) != len(route.Params) {
		return nil, false
	}

	params := make(map[string]string, len(values))
	for i, name := range route.Params {
		params[name] = values[i]
	}
	return &Match{Route: route, Params: params}, true
}

// Path builds the pathname that serves this route with the given parameters.
// Literal segments and values are percent-escaped; a catch-all value is split
// on "/" into several segments.
func (r *Route) Path(params map[string]string) (string, error) {
	if len(r.Segments) == 0 {
		return "/", nil
	}

	var b strings.Builder
	for _, seg := range r.Segments {
		switch seg.Kind {
		case Literal:
			b.WriteByte('/')
			b.WriteString(routepath.EscapeSegment(seg.Value))

		case Dynamic:
			value := params[seg.Value]
			if value == "" {
				return "", fmt.Errorf("%w: %s in %s", ErrMissingParam, seg.Value, r.Pattern)
			}
			b.WriteByte('/')
			b.WriteString(routepath.EscapeSegment(value))

		case CatchAll:
			value := strings.Trim(params[seg.Value], "/")
			if value == "" {
				return "", fmt.Errorf("%w: %s in %s", ErrMissingParam, seg.Value, r.Pattern)
			}
			for _, part := range strings.Split(value, "/") {
				b.WriteByte('/')
				b.WriteString(routepath.EscapeSegment(part))
			}
		}
	}
	return b.String(), nil
}
