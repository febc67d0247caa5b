package manifest

import (
	"context"
	"io/fs"
	"strings"
)

// FSSource reads a route tree from an fs.FS such as os.DirFS.
type FSSource struct {
	fsys fs.FS
}

// NewFS returns a Source over fsys.
func NewFS(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// List returns every regular file, skipping dot-directories.
func (s *FSSource) List(ctx context.Context) ([]string, error) {
	var files []string
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ReadFile reads name from the file system.
func (s *FSSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	return fs.ReadFile(s.fsys, strings.TrimPrefix(name, "/"))
}
