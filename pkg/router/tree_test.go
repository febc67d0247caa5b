package router

import (
	"reflect"
	"testing"
)

func literal(v string) Segment  { return Segment{Kind: Literal, Value: v} }
func dynamic(v string) Segment  { return Segment{Kind: Dynamic, Value: v} }
func catchAll(v string) Segment { return Segment{Kind: CatchAll, Value: v} }

func insertTestRoute(root *node, segments ...Segment) *Route {
	r := &Route{Pattern: patternOf(segments), Segments: segments, Params: paramNames(segments)}
	root.insert(r).route = r
	return r
}

func TestNodeFindChild(t *testing.T) {
	root := newNode("")
	root.addChild("users")
	root.addChild("projects")

	tests := []struct {
		segment string
		want    bool
	}{
		{"users", true},
		{"projects", true},
		{"tasks", false},
		{"", false},
	}

	for _, tt := range tests {
		got := root.findChild(tt.segment) != nil
		if got != tt.want {
			t.Errorf("findChild(%q) = %v, want %v", tt.segment, got, tt.want)
		}
	}
}

func TestNodeAddChild(t *testing.T) {
	root := newNode("")

	child1 := root.addChild("users")
	if child1 == nil {
		t.Fatal("addChild returned nil")
	}
	if child1.segment != "users" {
		t.Errorf("segment = %q, want %q", child1.segment, "users")
	}

	child2 := root.addChild("users")
	if child1 != child2 {
		t.Error("addChild should return existing child")
	}
	if len(root.children) != 1 {
		t.Errorf("len(children) = %d, want 1", len(root.children))
	}
}

func TestNodeSharesParamChild(t *testing.T) {
	root := newNode("")
	a := root.insert(&Route{Segments: []Segment{literal("user"), dynamic("id")}})
	b := root.insert(&Route{Segments: []Segment{literal("user"), dynamic("name")}})
	if a != b {
		t.Error("dynamic segments at the same position should share a node")
	}
}

func TestNodeMatchStatic(t *testing.T) {
	root := newNode("")
	insertTestRoute(root, literal("users"), literal("list"))

	tests := []struct {
		segments  []string
		wantMatch bool
	}{
		{[]string{"users", "list"}, true},
		{[]string{"users"}, false},
		{[]string{"users", "list", "extra"}, false},
		{[]string{"projects"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		_, _, ok := root.match(tt.segments, nil)
		if ok != tt.wantMatch {
			t.Errorf("match(%v) = %v, want %v", tt.segments, ok, tt.wantMatch)
		}
	}
}

func TestNodeMatchParams(t *testing.T) {
	root := newNode("")
	want := insertTestRoute(root, literal("users"), dynamic("id"))

	route, values, ok := root.match([]string{"users", "123"}, nil)
	if !ok {
		t.Fatal("expected match")
	}
	if route != want {
		t.Errorf("route = %v, want %v", route.Pattern, want.Pattern)
	}
	if !reflect.DeepEqual(values, []string{"123"}) {
		t.Errorf("values = %v, want [123]", values)
	}
}

func TestNodeMatchDecodesSegments(t *testing.T) {
	root := newNode("")
	insertTestRoute(root, literal("users"), dynamic("id"))

	_, values, ok := root.match([]string{"users", "john%20doe"}, nil)
	if !ok || values[0] != "john doe" {
		t.Errorf("match = %v %v, want [john doe]", values, ok)
	}

	if _, _, ok := root.match([]string{"users", "a%2Fb"}, nil); ok {
		t.Error("encoded slash must not match a single-segment parameter")
	}
}

func TestNodeMatchCatchAll(t *testing.T) {
	root := newNode("")
	insertTestRoute(root, literal("files"), catchAll("path"))

	_, values, ok := root.match([]string{"files", "a", "b", "c"}, nil)
	if !ok {
		t.Fatal("expected match")
	}
	if values[0] != "a/b/c" {
		t.Errorf("values[0] = %q, want %q", values[0], "a/b/c")
	}

	if _, _, ok := root.match([]string{"files"}, nil); ok {
		t.Error("catch-all needs at least one segment")
	}
}

func TestNodeMatchBacktracks(t *testing.T) {
	root := newNode("")
	insertTestRoute(root, literal("user"), literal("settings"))
	want := insertTestRoute(root, dynamic("section"), literal("edit"))

	route, values, ok := root.match([]string{"user", "edit"}, nil)
	if !ok {
		t.Fatal("expected match after backtracking out of the literal branch")
	}
	if route != want || values[0] != "user" {
		t.Errorf("match = %s %v, want %s [user]", route.Pattern, values, want.Pattern)
	}
}

func TestNodeMatchPrecedence(t *testing.T) {
	root := newNode("")
	lit := insertTestRoute(root, literal("user"), literal("settings"))
	dyn := insertTestRoute(root, literal("user"), dynamic("id"))
	all := insertTestRoute(root, literal("user"), catchAll("rest"))

	tests := []struct {
		segments []string
		want     *Route
	}{
		{[]string{"user", "settings"}, lit},
		{[]string{"user", "123"}, dyn},
		{[]string{"user", "123", "posts"}, all},
	}
	for _, tt := range tests {
		got, _, ok := root.match(tt.segments, nil)
		if !ok || got != tt.want {
			t.Errorf("match(%v) = %v, want %s", tt.segments, got, tt.want.Pattern)
		}
	}
}
