package manifest

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/approuter/pkg/router"
)

// Document is the exported form of a route table.
type Document struct {
	Routes   []RouteDoc  `yaml:"routes" json:"routes"`
	Layouts  []LayoutDoc `yaml:"layouts" json:"layouts"`
	NotFound string      `yaml:"notFound,omitempty" json:"notFound,omitempty"`
	Errors   []ErrorDoc  `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// RouteDoc describes one route.
type RouteDoc struct {
	Pattern string   `yaml:"pattern" json:"pattern"`
	Source  string   `yaml:"source" json:"source"`
	Params  []string `yaml:"params,omitempty" json:"params,omitempty"`
	Layout  string   `yaml:"layout,omitempty" json:"layout,omitempty"`
}

// LayoutDoc describes one layout.
type LayoutDoc struct {
	Dir     string `yaml:"dir" json:"dir"`
	Source  string `yaml:"source,omitempty" json:"source,omitempty"`
	Default bool   `yaml:"default,omitempty" json:"default,omitempty"`
}

// ErrorDoc describes one rejected entry.
type ErrorDoc struct {
	Kind    string   `yaml:"kind" json:"kind"`
	Message string   `yaml:"message" json:"message"`
	Dir     string   `yaml:"dir,omitempty" json:"dir,omitempty"`
	Files   []string `yaml:"files,omitempty" json:"files,omitempty"`
}

// Describe exports t. Routes keep discovery order; a route's layout is the
// source of its effective layout, empty for the root default.
func Describe(t *router.Table) Document {
	doc := Document{
		Routes:  []RouteDoc{},
		Layouts: []LayoutDoc{},
	}
	for _, r := range t.Routes() {
		doc.Routes = append(doc.Routes, RouteDoc{
			Pattern: r.Pattern,
			Source:  r.Source,
			Params:  r.Params,
			Layout:  t.ResolveLayout(r).Source,
		})
	}
	for _, l := range t.Layouts() {
		doc.Layouts = append(doc.Layouts, LayoutDoc{
			Dir:     l.Dir,
			Source:  l.Source,
			Default: l.Default,
		})
	}
	if nf := t.NotFound(); nf != nil {
		doc.NotFound = nf.Source
	}
	if errs := t.Errors(); errs != nil {
		for _, e := range errs.Errors {
			doc.Errors = append(doc.Errors, ErrorDoc{
				Kind:    e.Kind.Error(),
				Message: e.Message,
				Dir:     e.Dir,
				Files:   e.Files,
			})
		}
	}
	return doc
}

// WriteYAML encodes the document as YAML.
func (d Document) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

// WriteJSON encodes the document as indented JSON.
func (d Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
