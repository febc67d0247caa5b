// Package router compiles a file-tree naming convention into a route table.
//
// The table provides:
//   - Classification of files into pages, layouts and the not-found page
//   - A segment trie matcher where literal segments outrank dynamic ones
//   - Nearest-wins layout resolution over a route's directory lineage
//   - URL generation from a route and its parameters
//
// # File Structure Convention
//
//	app/
//	├── page.js                  → /
//	├── layout.js                → root layout
//	├── not-found.js             → fallback for unmatched paths
//	├── about.js                 → /about (sibling file)
//	├── user/
//	│   ├── settings/page.js     → /user/settings
//	│   └── [id]/page.js         → /user/[id]
//	├── blog/
//	│   └── [slug]/index.js      → /blog/[slug]
//	├── docs/
//	│   └── [...path]/page.js    → /docs/[...path] (one or more segments)
//	├── auth/
//	│   ├── layout.js            → layout for /auth/*
//	│   └── login/login.js       → /auth/login
//	└── _dashboard/
//	    ├── layout.js            → layout for everything under _dashboard
//	    └── analytics/page.js    → /analytics
//
// A directory's page is found by, most specific first: page.js, a sibling
// <dir>.js, <dir>/index.js, <dir>/<dir>.js. More than one of them for the same
// directory is an ambiguous route and the directory is left out.
//
// Directories starting with "_" are organization folders: they scope layouts
// but add nothing to the URL.
//
// # Usage
//
//	table, err := router.Build(files, router.Registry{
//	    Pages:   map[string]router.PageLoader{"app/user/[id]/page.js": loadUserPage},
//	    Layouts: map[string]router.LayoutLoader{"app/layout.js": loadRootLayout},
//	}, router.WithRoot("app"))
//	if err != nil {
//	    // *router.BuildErrors: the table is still usable
//	}
//
//	match, ok := table.Match("/user/123")
//	if ok {
//	    // match.Params["id"] == "123"
//	    layout := table.ResolveLayout(match.Route)
//	}
package router
