package router

import (
	"fmt"
	"strings"
)

// convertDir turns a root-relative directory into its visible segments and
// its lineage. Organization folders (_name) extend the lineage but add no
// segment.
//
//	"user/[id]"             → /user/[id], lineage "", "user", "user/[id]"
//	"_dashboard/analytics"  → /analytics, lineage "", "_dashboard", "_dashboard/analytics"
//	"docs/[...slug]"        → /docs/[...slug]
func convertDir(dir string) ([]Segment, []string, error) {
	lineage := []string{""}
	if dir == "" {
		return nil, lineage, nil
	}

	var segments []Segment
	seen := make(map[string]bool)
	parts := strings.Split(dir, "/")

	for i, part := range parts {
		lineage = append(lineage, strings.Join(parts[:i+1], "/"))

		if strings.HasPrefix(part, "_") {
			continue
		}

		seg, err := parseSegment(part)
		if err != nil {
			return nil, nil, err
		}

		if len(segments) > 0 && segments[len(segments)-1].Kind == CatchAll {
			return nil, nil, fmt.Errorf("%w: %q follows a catch-all segment", ErrInvalidSegment, part)
		}

		if seg.Kind != Literal {
			if seen[seg.Value] {
				return nil, nil, fmt.Errorf("%w: %q is used twice", ErrDuplicateParam, seg.Value)
			}
			seen[seg.Value] = true
		}

		segments = append(segments, seg)
	}

	return segments, lineage, nil
}

// parseSegment parses one visible directory name.
func parseSegment(part string) (Segment, error) {
	if !strings.ContainsAny(part, "[]") {
		return Segment{Kind: Literal, Value: part}, nil
	}

	if !strings.HasPrefix(part, "[") || !strings.HasSuffix(part, "]") {
		return Segment{}, fmt.Errorf("%w: %q must be fully wrapped in brackets", ErrInvalidSegment, part)
	}

	inner := part[1 : len(part)-1]
	kind := Dynamic
	if strings.HasPrefix(inner, "...") {
		kind = CatchAll
		inner = inner[3:]
	}

	if !validParamName(inner) {
		return Segment{}, fmt.Errorf("%w: %q has an invalid parameter name", ErrInvalidSegment, part)
	}
	return Segment{Kind: kind, Value: inner}, nil
}

// validParamName accepts non-empty names without brackets, slashes or dots.
func validParamName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, "[]/.")
}

// patternOf renders segments as a route pattern.
func patternOf(segments []Segment) string {
	if len(segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

// paramNames lists the parameter names in path order.
func paramNames(segments []Segment) []string {
	var names []string
	for _, s := range segments {
		if s.Kind != Literal {
			names = append(names, s.Value)
		}
	}
	return names
}
