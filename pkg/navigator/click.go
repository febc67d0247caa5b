package navigator

import (
	"net/url"
	"strings"
)

// Click describes an anchor activation as reported by the host.
type Click struct {
	// Href is the anchor's href attribute, relative or absolute.
	Href string

	// Button is the mouse button; 0 is the primary button.
	Button int

	Ctrl, Meta, Shift, Alt bool

	// Target is the anchor's target attribute.
	Target string

	// Download is set when the anchor has a download attribute.
	Download bool

	// Rel is the anchor's rel attribute.
	Rel string

	// DefaultPrevented is set when another handler already cancelled the
	// click.
	DefaultPrevented bool
}

// intercept decides whether the navigator handles c and returns the
// relative URL to navigate to.
func (n *Navigator) intercept(c Click) (string, bool) {
	if c.DefaultPrevented || c.Button != 0 {
		return "", false
	}
	if c.Ctrl || c.Meta || c.Shift || c.Alt {
		return "", false
	}
	if c.Download {
		return "", false
	}
	if t := strings.ToLower(c.Target); t != "" && t != "_self" {
		return "", false
	}
	for _, r := range strings.Fields(strings.ToLower(c.Rel)) {
		if r == "external" {
			return "", false
		}
	}
	if c.Href == "" || strings.HasPrefix(c.Href, "#") {
		return "", false
	}
	return n.sameOrigin(c.Href)
}

// sameOrigin resolves href against the configured origin and returns its
// relative form when it stays on that origin. Without an origin only
// relative hrefs qualify.
func (n *Navigator) sameOrigin(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Scheme == "" && u.Host == "" {
		if u.Opaque != "" {
			return "", false
		}
		return href, true
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if n.origin == nil {
		return "", false
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = n.origin.Scheme
	}
	if scheme != n.origin.Scheme || !strings.EqualFold(u.Host, n.origin.Host) {
		return "", false
	}

	rel := u.EscapedPath()
	if rel == "" {
		rel = "/"
	}
	if u.RawQuery != "" {
		rel += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		rel += "#" + u.EscapedFragment()
	}
	return rel, true
}

// resolve resolves a relative URL against the URL on display, or against
// "/" before the first mount, the way a browser resolves an href.
func (n *Navigator) resolve(rel string) string {
	if strings.HasPrefix(rel, "/") {
		return rel
	}
	ref, err := url.Parse(rel)
	if err != nil {
		return rel
	}
	base := &url.URL{Path: "/"}
	if cur := n.Current(); cur != nil {
		if b, err := url.Parse(cur.URL); err == nil {
			base = b
		}
	}
	return base.ResolveReference(ref).String()
}

// isAbsolute reports whether raw names a scheme or host. Unparseable input
// is treated as a path so that it ends on the not-found page.
func isAbsolute(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" || u.Host != ""
}
