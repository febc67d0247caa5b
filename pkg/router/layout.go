package router

import "sort"

// ResolveLayout returns the single effective layout for route: the layout of
// the nearest directory in its lineage, searching from the page's own
// directory up to the root. Layouts never compose; the nearest one replaces
// every more distant one. A nil route resolves to the root layout.
func (t *Table) ResolveLayout(route *Route) *LayoutRecord {
	if route != nil {
		for i := len(route.Lineage) - 1; i >= 0; i-- {
			if rec, ok := t.layouts[route.Lineage[i]]; ok {
				return rec
			}
		}
	}
	return t.layouts[""]
}

// RootLayout returns the root layout record. When the tree has no root
// layout file this is the synthetic default record.
func (t *Table) RootLayout() *LayoutRecord {
	return t.layouts[""]
}

// Layouts returns every layout record sorted by directory.
func (t *Table) Layouts() []*LayoutRecord {
	out := make([]*LayoutRecord, 0, len(t.layouts))
	for _, rec := range t.layouts {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dir < out[j].Dir })
	return out
}
