package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd(a *app) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version, commit, and build information for the approuter CLI.`,
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(a.out, version)
				return
			}
			fmt.Fprintf(a.out, "approuter %s\n", version)
			fmt.Fprintf(a.out, "  commit: %s\n", commit)
			fmt.Fprintf(a.out, "  built:  %s\n", date)
			fmt.Fprintf(a.out, "  go:     %s\n", runtime.Version())
			fmt.Fprintf(a.out, "  os:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")
	return cmd
}
