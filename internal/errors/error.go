package errors

import (
	stderrors "errors"
	"fmt"
	"path"

	"github.com/vango-dev/approuter/pkg/navigator"
	"github.com/vango-dev/approuter/pkg/router"
)

// Category represents the type of error.
type Category string

const (
	CategoryBuild      Category = "build"
	CategoryNavigation Category = "navigation"
	CategoryConfig     Category = "config"
	CategoryProtocol   Category = "protocol"
)

// Diagnostic is a structured error with the files involved, a suggestion
// and documentation.
type Diagnostic struct {
	// Code is a unique error identifier (e.g., "R001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Files are the source files involved.
	Files []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Diagnostic) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Diagnostic) Unwrap() error {
	return e.Wrapped
}

// WithFiles records the files involved.
func (e *Diagnostic) WithFiles(files ...string) *Diagnostic {
	e.Files = append(e.Files, files...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Diagnostic) WithSuggestion(s string) *Diagnostic {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *Diagnostic) WithDetail(d string) *Diagnostic {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Diagnostic) Wrap(err error) *Diagnostic {
	e.Wrapped = err
	return e
}

// New creates a Diagnostic from a registered error code.
func New(code string) *Diagnostic {
	template, ok := registry[code]
	if !ok {
		return &Diagnostic{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Diagnostic{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a Diagnostic with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// buildCodes maps build error kinds to their codes.
var buildCodes = []struct {
	kind error
	code string
}{
	{router.ErrAmbiguousRoute, "R001"},
	{router.ErrDuplicateParam, "R002"},
	{router.ErrDuplicateRoute, "R003"},
	{router.ErrInvalidSegment, "R004"},
}

// FromBuildError converts one rejected table entry.
func FromBuildError(be *router.BuildError) *Diagnostic {
	code := "R000"
	for _, bc := range buildCodes {
		if stderrors.Is(be.Kind, bc.kind) {
			code = bc.code
			break
		}
	}
	d := New(code).WithDetail(be.Message).WithFiles(be.Files...).Wrap(be)
	if code == "R001" && be.Dir != "" {
		base := path.Base(be.Dir)
		d.WithSuggestion(fmt.Sprintf("Keep exactly one of page.js, %s.js, index.js or %s/%s.js", base, base, base))
	}
	return d
}

// FromBuild converts the error returned by router.Build. It returns nil for
// a nil error and a single uncoded diagnostic for other errors.
func FromBuild(err error) []*Diagnostic {
	if err == nil {
		return nil
	}
	var bes *router.BuildErrors
	if !stderrors.As(err, &bes) {
		return []*Diagnostic{FromError(err, "R000")}
	}
	if bes == nil {
		return nil
	}
	out := make([]*Diagnostic, 0, len(bes.Errors))
	for _, be := range bes.Errors {
		out = append(out, FromBuildError(be))
	}
	return out
}

// FromNavigation converts a navigator error to its diagnostic.
func FromNavigation(err error) *Diagnostic {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, navigator.ErrNoLoader):
		return New("R102").Wrap(err)
	case stderrors.Is(err, navigator.ErrCrossOrigin):
		return New("R103").Wrap(err)
	case stderrors.Is(err, navigator.ErrLoadFailure):
		return New("R101").Wrap(err)
	default:
		return FromError(err, "R101")
	}
}

// FromError wraps a standard error in a Diagnostic.
func FromError(err error, code string) *Diagnostic {
	if err == nil {
		return nil
	}
	var d *Diagnostic
	if stderrors.As(err, &d) {
		return d
	}
	return New(code).Wrap(err)
}

// Code returns the diagnostic code carried by err, or "".
func Code(err error) string {
	var d *Diagnostic
	if stderrors.As(err, &d) {
		return d.Code
	}
	return ""
}
