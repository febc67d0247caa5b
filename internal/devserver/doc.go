// Package devserver previews a route tree in the browser.
//
// The server renders html/template page and layout files from a
// manifest.Source and drives one navigator.Navigator per browser tab over a
// WebSocket. The browser runs a thin client that reports navigations and
// link clicks and applies the markup the server sends back.
//
// # Routes
//
//	GET /metrics          Prometheus metrics
//	GET /_approuter/ws    thin-client WebSocket
//	GET /*                shell page
//
// # Protocol
//
// Frames are JSON text messages with a "type" field.
//
// Client to server:
//
//	{"type": "init", "url": "/user/42?tab=posts"}
//	{"type": "navigate", "url": "/about"}
//	{"type": "popstate", "url": "/"}
//	{"type": "click", "href": "/about", "button": 0, "ctrl": false, ...}
//
// Server to client:
//
//	{"type": "mount", "html": "..."}       replace the whole outlet
//	{"type": "content", "html": "..."}     replace the layout's page content
//	{"type": "push", "url": "..."}         history.pushState
//	{"type": "replace", "url": "..."}      history.replaceState
//	{"type": "route", "path": "...", "params": {...}, "query": {...}}
//	{"type": "follow", "url": "...", "target": "_blank"}
//	{"type": "reload"}                     the route table was rebuilt
//	{"type": "error", "message": "...", "code": "R001"}
//
// # Templates
//
// Pages execute with PageData and layouts with LayoutData:
//
//	<h1>User {{index .Params "id"}}</h1>
//	<p>Tab: {{.Query.Get "tab"}}</p>
//
//	<nav>{{link "/" "Home" .Path}}</nav>
//	<main>{{.Content}}</main>
package devserver
