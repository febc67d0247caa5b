package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileList is a route tree described in YAML instead of read from disk:
//
//	root: app
//	files:
//	  - app/page.html
//	  - app/user/[id]/page.html
//	contents:
//	  app/page.html: "<h1>Home</h1>"
//
// Contents is optional; files without contents can be listed and matched
// but not read.
type FileList struct {
	Root     string            `yaml:"root,omitempty"`
	Files    []string          `yaml:"files"`
	Contents map[string]string `yaml:"contents,omitempty"`
}

// ParseFileList decodes a YAML file list.
func ParseFileList(r io.Reader) (*FileList, error) {
	var fl FileList
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fl); err != nil {
		if errors.Is(err, io.EOF) {
			return &fl, nil
		}
		return nil, fmt.Errorf("decoding file list: %w", err)
	}
	for name := range fl.Contents {
		if !fl.has(name) {
			fl.Files = append(fl.Files, name)
		}
	}
	return &fl, nil
}

// ReadFileList reads a YAML file list from path.
func ReadFileList(path string) (*FileList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseFileList(f)
}

func (fl *FileList) has(name string) bool {
	for _, f := range fl.Files {
		if f == name {
			return true
		}
	}
	return false
}

// List returns the listed files.
func (fl *FileList) List(ctx context.Context) ([]string, error) {
	return append([]string(nil), fl.Files...), nil
}

// ReadFile returns inline contents, or fs.ErrNotExist.
func (fl *FileList) ReadFile(ctx context.Context, name string) ([]byte, error) {
	content, ok := fl.Contents[strings.TrimPrefix(name, "/")]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return []byte(content), nil
}

// WriteYAML encodes the file list.
func (fl *FileList) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fl); err != nil {
		return err
	}
	return enc.Close()
}
