package router

import (
	"errors"
	"fmt"
	"strings"
)

// Build error kinds. Every BuildError unwraps to one of these.
var (
	// ErrAmbiguousRoute: more than one page file resolves for one directory.
	ErrAmbiguousRoute = errors.New("ambiguous route")

	// ErrDuplicateParam: the same parameter name appears twice in one route.
	ErrDuplicateParam = errors.New("duplicate parameter name")

	// ErrDuplicateRoute: two directories produce the same URL pattern once
	// organization folders are elided.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrInvalidSegment: a directory name has malformed brackets or a
	// catch-all that is not the last segment.
	ErrInvalidSegment = errors.New("invalid segment")
)

// BuildError describes one entry rejected while building the table.
type BuildError struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	// Message is the human-readable description.
	Message string

	// Dir is the directory the error applies to.
	Dir string

	// Pattern is the URL pattern involved, when known.
	Pattern string

	// Files are the source files involved.
	Files []string
}

func (e *BuildError) Error() string {
	if len(e.Files) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(e.Files, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the error kind.
func (e *BuildError) Unwrap() error {
	return e.Kind
}

// BuildErrors collects every BuildError from one Build call.
type BuildErrors struct {
	Errors []*BuildError
}

func (e *BuildErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d route build errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *BuildErrors) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		out[i] = err
	}
	return out
}
