package devserver

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"

	"github.com/rohanthewiz/element"

	"github.com/vango-dev/approuter/pkg/component"
	"github.com/vango-dev/approuter/pkg/manifest"
	"github.com/vango-dev/approuter/pkg/query"
	"github.com/vango-dev/approuter/pkg/router"
)

// PageData is the value page templates execute with.
type PageData struct {
	Params map[string]string
	Query  query.Map
	Path   string
}

// LayoutData is the value layout templates execute with. Content is the page
// markup already wrapped in the outlet element.
type LayoutData struct {
	Content template.HTML
}

// templateFuncs are available to every page and layout.
var templateFuncs = template.FuncMap{
	"link": func(href, text, current string) template.HTML {
		b := element.NewBuilder()
		element.RenderComponents(b, component.Link{
			Href:    href,
			Text:    html.EscapeString(text),
			Current: current,
		})
		return template.HTML(b.String())
	},
}

// Registry returns loaders for every file in files. Loading reads and
// parses the file, so edits show up on the next navigation.
func Registry(src manifest.Source, files []string) router.Registry {
	reg := router.Registry{
		Pages:   make(map[string]router.PageLoader, len(files)),
		Layouts: make(map[string]router.LayoutLoader, len(files)),
	}
	for _, name := range files {
		reg.Pages[name] = pageLoader(src, name)
		reg.Layouts[name] = layoutLoader(src, name)
	}
	return reg
}

func parseTemplate(ctx context.Context, src manifest.Source, name string) (*template.Template, error) {
	data, err := src.ReadFile(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return tmpl, nil
}

func pageLoader(src manifest.Source, name string) router.PageLoader {
	return func(ctx context.Context) (router.Page, error) {
		tmpl, err := parseTemplate(ctx, src, name)
		if err != nil {
			return nil, err
		}
		return component.NewPage(func(p *component.Props) string {
			return execute(tmpl, PageData{
				Params: p.RouteParams(),
				Query:  p.Query(),
				Path:   p.Pathname(),
			})
		}), nil
	}
}

func layoutLoader(src manifest.Source, name string) router.LayoutLoader {
	return func(ctx context.Context) (router.Layout, error) {
		tmpl, err := parseTemplate(ctx, src, name)
		if err != nil {
			return nil, err
		}
		return component.NewLayout(func(content string) string {
			return execute(tmpl, LayoutData{Content: template.HTML(component.Outlet(content))})
		}), nil
	}
}

// execute renders tmpl. Execution errors are rendered in place.
func execute(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return `<pre class="approuter-error">` + html.EscapeString(err.Error()) + `</pre>`
	}
	return buf.String()
}
