// Package navigator drives single-page navigation over a route table.
//
// A Navigator owns one outlet: the region where the effective layout is
// mounted and the page content placed. Every entry point (Navigate, Replace,
// PopState, HandleClick, Init) runs one navigation:
//
//	Idle → Matching → ResolvingLayout → Loading → Mounting → Idle
//	             ↘ NotFound → Idle
//
// Each navigation takes a strictly increasing sequence number. Loading is
// the only step that blocks; when it finishes, the navigation mounts only if
// its number is still the latest, so a slow navigation can never overwrite a
// newer one. Mounting, the history update and the route-change event happen
// together under one lock.
//
// When the pathname, route and layout are unchanged (a query-only change),
// the mounted page receives new parameters and re-renders in place. When
// only the layout is unchanged, the layout instance is kept and a new page
// is placed in it.
//
// Usage:
//
//	nav := navigator.New(table, history, outlet,
//	    navigator.WithOrigin("http://localhost:3000"),
//	    navigator.WithLogger(logger),
//	)
//	defer nav.Dispose()
//
//	nav.On(navigator.EventRouteChange, func(ev navigator.Event) {
//	    log.Println(ev.Path, ev.Params, ev.Query)
//	})
//	nav.Init(ctx, "/user/42?tab=posts")
package navigator
