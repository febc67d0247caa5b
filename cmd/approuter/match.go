package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	apperrors "github.com/vango-dev/approuter/internal/errors"
	"github.com/vango-dev/approuter/pkg/query"
	"github.com/vango-dev/approuter/pkg/routepath"
)

// matchResult is the JSON form of a match.
type matchResult struct {
	URL     string            `json:"url"`
	Path    string            `json:"path"`
	Pattern string            `json:"pattern,omitempty"`
	Source  string            `json:"source,omitempty"`
	Params  map[string]string `json:"params"`
	Query   query.Map         `json:"query"`
	Layout  string            `json:"layout,omitempty"`
	Found   bool              `json:"found"`
}

func matchCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "match <url>",
		Short: "Show which route a URL resolves to",
		Long: `Resolve a URL against the route tree and print the matched route,
its parameters, the query and the effective layout.

Exits non-zero when nothing matches.

Examples:
  approuter match /user/42
  approuter match '/blog/hello?draft=1' --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, _, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}

			raw := args[0]
			res := matchResult{URL: raw, Params: map[string]string{}}
			loc, perr := routepath.Parse(raw)
			if perr == nil {
				res.Path = loc.Path
				res.Query = query.Parse(loc.RawQuery)
				if m, ok := table.Match(loc.Path); ok {
					res.Found = true
					res.Pattern = m.Route.Pattern
					res.Source = m.Route.Source
					res.Params = m.Params
					res.Layout = table.ResolveLayout(m.Route).Source
				}
			}

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				writeMatch(a, res)
			}

			if !res.Found {
				d := apperrors.New("R100").WithDetail(fmt.Sprintf("no route matches %s", raw))
				if perr != nil {
					d.WithDetail(perr.Error()).Wrap(perr)
				}
				return d
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func writeMatch(a *app, res matchResult) {
	if !res.Found {
		fmt.Fprintf(a.out, "%s: not found\n", res.URL)
		return
	}
	fmt.Fprintf(a.out, "pattern: %s\n", res.Pattern)
	fmt.Fprintf(a.out, "source:  %s\n", res.Source)
	layout := res.Layout
	if layout == "" {
		layout = "(default)"
	}
	fmt.Fprintf(a.out, "layout:  %s\n", layout)

	names := make([]string, 0, len(res.Params))
	for name := range res.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.out, "param:   %s=%s\n", name, res.Params[name])
	}
	for _, key := range res.Query.Keys() {
		fmt.Fprintf(a.out, "query:   %s=%s\n", key, res.Query.Get(key))
	}
}
