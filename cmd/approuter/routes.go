package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	apperrors "github.com/vango-dev/approuter/internal/errors"
	"github.com/vango-dev/approuter/pkg/manifest"
)

func routesCmd(a *app) *cobra.Command {
	var (
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the routes of the route tree",
		Long: `List every route with its source file, parameters and effective layout.

Rejected entries (ambiguous pages, duplicate parameters, malformed
directory names) are reported on stderr.

Examples:
  approuter routes
  approuter routes --format yaml
  approuter routes --dir src/app --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, _, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			doc := manifest.Describe(table)

			switch format {
			case "yaml":
				err = doc.WriteYAML(a.out)
			case "json":
				err = doc.WriteJSON(a.out)
			case "table":
				err = writeRouteTable(a, doc)
			default:
				return apperrors.New("C002").WithDetail(fmt.Sprintf("--format: %q is not table, yaml or json", format))
			}
			if err != nil {
				return err
			}
			if strict && len(doc.Errors) > 0 {
				return fmt.Errorf("%d route build errors", len(doc.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, yaml, json)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any entry was rejected")
	return cmd
}

func writeRouteTable(a *app, doc manifest.Document) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATTERN\tSOURCE\tPARAMS\tLAYOUT")
	for _, r := range doc.Routes {
		layout := r.Layout
		if layout == "" {
			layout = "(default)"
		}
		params := strings.Join(r.Params, ",")
		if params == "" {
			params = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Pattern, r.Source, params, layout)
	}
	if doc.NotFound != "" {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", "*", doc.NotFound, "-", "(root)")
	}
	return tw.Flush()
}
