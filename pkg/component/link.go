package component

import (
	"strings"

	"github.com/rohanthewiz/element"
)

// Link renders an anchor the navigator intercepts for client-side
// navigation. Any same-origin anchor is intercepted; Link adds the active
// class handling.
type Link struct {
	Href string
	Text string

	// Current is the pathname being displayed. When it matches Href the
	// anchor gets ActiveClass.
	Current string

	// ActiveClass defaults to "active".
	ActiveClass string

	// Exact requires the whole pathname to match; otherwise Href may be a
	// segment prefix of Current.
	Exact bool
}

func (l Link) Render(b *element.Builder) any {
	attrs := []string{"href", l.Href}
	if l.Current != "" && IsActive(l.Href, l.Current, l.Exact) {
		class := l.ActiveClass
		if class == "" {
			class = "active"
		}
		attrs = append(attrs, "class", class, "aria-current", "page")
	}
	b.A(attrs...).T(l.Text)
	return nil
}

// IsActive reports whether href designates current. A non-exact match
// accepts href as a whole-segment prefix, so "/user" is active on
// "/user/42" but not on "/users".
func IsActive(href, current string, exact bool) bool {
	href, _, _ = strings.Cut(href, "?")
	href, _, _ = strings.Cut(href, "#")
	if href == current {
		return true
	}
	if exact || href == "" {
		return false
	}
	if href == "/" {
		return false
	}
	return strings.HasPrefix(current, strings.TrimSuffix(href, "/")+"/")
}
