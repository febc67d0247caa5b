package router

import (
	"strings"

	"github.com/vango-dev/approuter/pkg/routepath"
)

// node is a node in the segment trie. Dynamic and catch-all children are
// shared between routes whatever their parameter names; captured values are
// kept positionally and named from the matched route afterwards.
type node struct {
	// segment is the literal text this node matches
	segment string

	// route is set when a route ends at this node
	route *Route

	// children are literal children in insertion order
	children []*node

	// paramChild matches any single segment
	paramChild *node

	// catchAllChild matches every remaining segment
	catchAllChild *node
}

func newNode(segment string) *node {
	return &node{segment: segment}
}

// findChild finds a literal child with an exact segment match.
func (n *node) findChild(segment string) *node {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

// addChild adds or retrieves a literal child.
func (n *node) addChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := newNode(segment)
	n.children = append(n.children, child)
	return child
}

func (n *node) addParamChild() *node {
	if n.paramChild == nil {
		n.paramChild = newNode("")
	}
	return n.paramChild
}

func (n *node) addCatchAllChild() *node {
	if n.catchAllChild == nil {
		n.catchAllChild = newNode("")
	}
	return n.catchAllChild
}

// insert walks or creates the path for route and returns the terminal node.
// The caller decides what to do when the node already holds a route.
func (n *node) insert(route *Route) *node {
	current := n
	for _, seg := range route.Segments {
		switch seg.Kind {
		case Dynamic:
			current = current.addParamChild()
		case CatchAll:
			current = current.addCatchAllChild()
		default:
			current = current.addChild(seg.Value)
		}
	}
	return current
}

// match finds the route for the remaining raw segments. Literal children are
// tried first, then the dynamic child, then the catch-all child, backtracking
// on failure. At the first position where candidates differ, the literal one
// therefore always wins. captured accumulates decoded parameter values in
// path order.
func (n *node) match(segments []string, captured []string) (*Route, []string, bool) {
	if len(segments) == 0 {
		if n.route != nil {
			return n.route, captured, true
		}
		return nil, nil, false
	}

	segment := segments[0]
	remaining := segments[1:]

	if literal, err := routepath.DecodeSegment(segment, true); err == nil {
		if child := n.findChild(literal); child != nil {
			if route, values, ok := child.match(remaining, captured); ok {
				return route, values, true
			}
		}
	}

	if n.paramChild != nil {
		if value, err := routepath.DecodeSegment(segment, false); err == nil && value != "" {
			if route, values, ok := n.paramChild.match(remaining, append(captured, value)); ok {
				return route, values, true
			}
		}
	}

	if n.catchAllChild != nil && n.catchAllChild.route != nil {
		decoded := make([]string, 0, len(segments))
		for _, s := range segments {
			value, err := routepath.DecodeSegment(s, true)
			if err != nil {
				return nil, nil, false
			}
			decoded = append(decoded, value)
		}
		return n.catchAllChild.route, append(captured, strings.Join(decoded, "/")), true
	}

	return nil, nil, false
}
