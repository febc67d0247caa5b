package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Location is a navigation target split into its routable parts.
type Location struct {
	// Path is the canonical pathname, always starting with "/".
	Path string

	// RawQuery is the query string without the leading "?".
	RawQuery string

	// Fragment is the fragment without the leading "#".
	Fragment string
}

// String reassembles the location as a relative URL.
func (l Location) String() string {
	var b strings.Builder
	b.WriteString(l.Path)
	if l.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(l.RawQuery)
	}
	if l.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(l.Fragment)
	}
	return b.String()
}

// Path canonicalization errors.
var (
	ErrInvalidPath           = errors.New("invalid path")
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in segment")
)

// Parse splits a relative navigation URL ("/a/b?x=1#top") into a Location
// with a canonical path. Absolute URLs are rejected; resolve them against the
// page origin first.
func Parse(raw string) (Location, error) {
	rest, fragment, _ := strings.Cut(raw, "#")
	path, query := SplitPathAndQuery(rest)

	if strings.HasPrefix(path, "//") || strings.Contains(path, "://") {
		return Location{}, ErrInvalidPath
	}

	canonical, err := CanonicalizePath(path)
	if err != nil {
		return Location{}, err
	}
	return Location{Path: canonical, RawQuery: query, Fragment: fragment}, nil
}

// CanonicalizePath normalizes a pathname:
//   - a missing leading slash is added
//   - repeated slashes collapse (/blog//post → /blog/post)
//   - "." segments are dropped and ".." segments resolved
//   - a trailing slash is removed, except for "/"
//
// Backslashes, NUL bytes, malformed percent escapes and ".." that would climb
// above the root are rejected.
func CanonicalizePath(path string) (string, error) {
	if path == "" {
		return "/", nil
	}

	if strings.Contains(path, "\\") {
		return "", ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return "", err
		}
	}

	var kept []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) == 0 {
				return "", ErrPathEscapesRoot
			}
			kept = kept[:len(kept)-1]
		default:
			kept = append(kept, seg)
		}
	}

	return "/" + strings.Join(kept, "/"), nil
}

// validatePercentEscapes checks that every '%' starts a %XX hex escape.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Split returns the raw (still encoded) segments of a canonical path.
// The root path has no segments.
func Split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// DecodeSegment percent-decodes one path segment. A decoded "/" is refused
// unless the segment feeds a catch-all parameter, so "%2F" cannot smuggle an
// extra segment into a single-segment parameter.
func DecodeSegment(segment string, allowSlash bool) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	if !allowSlash && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}
	return decoded, nil
}

// EscapeSegment is the inverse of DecodeSegment for building hrefs.
func EscapeSegment(value string) string {
	return url.PathEscape(value)
}

// SplitPathAndQuery splits "path?query" into its parts.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}
