// Package component provides ready-made page and layout units that satisfy
// the router.Page and router.Layout contracts.
//
// Props is the Set/Get store every page needs; embed it and add a Render
// method, or wrap a render function with NewPage:
//
//	loader := component.PageLoader(func(p *component.Props) string {
//	    return "<h1>User " + html.EscapeString(p.RouteParams()["id"]) + "</h1>"
//	})
//
// NotFoundPage and DefaultLayout are the built-in fallbacks the navigator uses
// when the route tree provides none.
package component
