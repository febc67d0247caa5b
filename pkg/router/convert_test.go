package router

import (
	"errors"
	"reflect"
	"testing"
)

func TestConvertDir(t *testing.T) {
	tests := []struct {
		dir     string
		pattern string
		lineage []string
		params  []string
	}{
		{"", "/", []string{""}, nil},
		{"about", "/about", []string{"", "about"}, nil},
		{"user/[id]", "/user/[id]", []string{"", "user", "user/[id]"}, []string{"id"}},
		{"_dashboard/analytics", "/analytics", []string{"", "_dashboard", "_dashboard/analytics"}, nil},
		{"_group", "/", []string{"", "_group"}, nil},
		{"docs/[...slug]", "/docs/[...slug]", []string{"", "docs", "docs/[...slug]"}, []string{"slug"}},
		{"[org]/_admin/[id]", "/[org]/[id]", []string{"", "[org]", "[org]/_admin", "[org]/_admin/[id]"}, []string{"org", "id"}},
	}

	for _, tt := range tests {
		segments, lineage, err := convertDir(tt.dir)
		if err != nil {
			t.Errorf("convertDir(%q) error = %v", tt.dir, err)
			continue
		}
		if got := patternOf(segments); got != tt.pattern {
			t.Errorf("convertDir(%q) pattern = %q, want %q", tt.dir, got, tt.pattern)
		}
		if !reflect.DeepEqual(lineage, tt.lineage) {
			t.Errorf("convertDir(%q) lineage = %v, want %v", tt.dir, lineage, tt.lineage)
		}
		if got := paramNames(segments); !reflect.DeepEqual(got, tt.params) {
			t.Errorf("convertDir(%q) params = %v, want %v", tt.dir, got, tt.params)
		}
	}
}

func TestConvertDirErrors(t *testing.T) {
	tests := []struct {
		dir  string
		want error
	}{
		{"[id]/post/[id]", ErrDuplicateParam},
		{"[id]/_x/[...id]", ErrDuplicateParam},
		{"[id", ErrInvalidSegment},
		{"x[id]", ErrInvalidSegment},
		{"[a.b]", ErrInvalidSegment},
		{"[...]", ErrInvalidSegment},
		{"[...rest]/tail", ErrInvalidSegment},
	}

	for _, tt := range tests {
		_, _, err := convertDir(tt.dir)
		if !errors.Is(err, tt.want) {
			t.Errorf("convertDir(%q) error = %v, want %v", tt.dir, err, tt.want)
		}
	}
}

func TestRouteShape(t *testing.T) {
	a, _, _ := convertDir("user/[id]")
	b, _, _ := convertDir("_x/user/[name]")
	c, _, _ := convertDir("user/[...id]")

	ra := &Route{Segments: a}
	rb := &Route{Segments: b}
	rc := &Route{Segments: c}
	if ra.shape() != rb.shape() {
		t.Errorf("shape(%s) != shape(%s)", patternOf(a), patternOf(b))
	}
	if ra.shape() == rc.shape() {
		t.Error("dynamic and catch-all segments must differ in shape")
	}
}
