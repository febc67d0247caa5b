// Package manifest lists route trees from file systems, S3 buckets and YAML
// file lists, and exports compiled route tables as YAML or JSON documents.
package manifest

import (
	"context"
	"fmt"

	"github.com/vango-dev/approuter/pkg/router"
)

// Source provides the file paths of a route tree and their contents.
// Paths are slash-separated and relative to the source root.
type Source interface {
	List(ctx context.Context) ([]string, error)
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// Load lists src and builds a route table from it. Like router.Build, the
// table is returned even when some entries were rejected.
func Load(ctx context.Context, src Source, reg router.Registry, opts ...router.Option) (*router.Table, error) {
	files, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing route files: %w", err)
	}
	return router.Build(files, reg, opts...)
}
