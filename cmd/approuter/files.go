package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/approuter/pkg/manifest"
)

func filesCmd(a *app) *cobra.Command {
	var withContents bool

	cmd := &cobra.Command{
		Use:   "files",
		Short: "Export the route tree as a YAML file list",
		Long: `Write the configured route source as a YAML file list that
--manifest can read back, e.g. to snapshot an S3 prefix.

Examples:
  approuter files > routes.yaml
  approuter files --contents --s3-bucket site > routes.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, root, err := a.cfg.OpenSource()
			if err != nil {
				return err
			}
			files, err := src.List(ctx)
			if err != nil {
				return err
			}

			fl := &manifest.FileList{Root: root, Files: files}
			if withContents {
				fl.Contents = make(map[string]string, len(files))
				for _, name := range files {
					data, err := src.ReadFile(ctx, name)
					if err != nil {
						return err
					}
					fl.Contents[name] = string(data)
				}
			}
			return fl.WriteYAML(a.out)
		},
	}

	cmd.Flags().BoolVar(&withContents, "contents", false, "inline file contents")
	return cmd
}
