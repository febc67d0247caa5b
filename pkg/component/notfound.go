package component

import (
	"context"
	"html"

	"github.com/rohanthewiz/element"

	"github.com/vango-dev/approuter/pkg/router"
)

// notFoundBody is the built-in not-found markup.
type notFoundBody struct {
	Path string
}

func (n notFoundBody) Render(b *element.Builder) any {
	b.Div("class", "approuter-not-found").R(
		b.H1().T("Page not found"),
		func() any {
			if n.Path != "" {
				b.P().R(
					b.T("No page matches "),
					b.Code().T(html.EscapeString(n.Path)),
				)
			}
			return nil
		}(),
		b.P().R(
			element.RenderComponents(b, Link{Href: "/", Text: "Back to home"}),
		),
	)
	return nil
}

// NewNotFoundPage returns the built-in page rendered when nothing matches
// and the route tree has no not-found page.
func NewNotFoundPage() *Page {
	return NewPage(func(p *Props) string {
		b := element.NewBuilder()
		element.RenderComponents(b, notFoundBody{Path: p.Pathname()})
		return b.String()
	})
}

// NotFoundLoader loads the built-in not-found page.
func NotFoundLoader(ctx context.Context) (router.Page, error) {
	return NewNotFoundPage(), nil
}
