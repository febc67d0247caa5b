package router

import (
	"path"
	"strings"
)

// EntryKind classifies a file-tree entry.
type EntryKind int

const (
	// EntryPage declares the page of a directory.
	EntryPage EntryKind = iota

	// EntryLayout declares the layout of a directory and its descendants.
	EntryLayout

	// EntryNotFound declares the fallback page for unmatched pathnames.
	EntryNotFound
)

func (k EntryKind) String() string {
	switch k {
	case EntryLayout:
		return "layout"
	case EntryNotFound:
		return "not-found"
	default:
		return "page"
	}
}

// Page resolution priorities, most specific first.
const (
	PriorityPageFile  = 1 // dir/page.js
	PrioritySibling   = 2 // parent/dir.js
	PriorityIndexFile = 3 // dir/index.js
	PriorityNamedFile = 4 // dir/dir.js
)

// Entry is a classified file-tree entry.
type Entry struct {
	Kind EntryKind

	// File is the normalized source path.
	File string

	// Dir is the directory the entry applies to ("" for the root). For
	// sibling pages this is the directory the file stands for, which need
	// not exist on disk.
	Dir string

	// Priority is the page resolution priority; zero for non-pages.
	Priority int
}

// Classify maps a file path to the entry it declares. It returns false for
// files that are not part of the route tree: other extensions, names starting
// with "_" or ".", files inside dot-directories, and *.test / *.spec files.
func Classify(file string, extensions []string) (Entry, bool) {
	file = NormalizeFile(file)
	if file == "" {
		return Entry{}, false
	}

	for _, part := range strings.Split(file, "/") {
		if strings.HasPrefix(part, ".") {
			return Entry{}, false
		}
	}

	base := path.Base(file)
	ext := matchExtension(base, extensions)
	if ext == "" {
		return Entry{}, false
	}
	if strings.HasPrefix(base, "_") {
		return Entry{}, false
	}

	stem := strings.TrimSuffix(base, ext)
	if stem == "" || strings.HasSuffix(stem, ".test") || strings.HasSuffix(stem, ".spec") {
		return Entry{}, false
	}

	dir := path.Dir(file)
	if dir == "." {
		dir = ""
	}

	switch stem {
	case "page":
		return Entry{Kind: EntryPage, File: file, Dir: dir, Priority: PriorityPageFile}, true
	case "layout":
		return Entry{Kind: EntryLayout, File: file, Dir: dir}, true
	case "index":
		return Entry{Kind: EntryPage, File: file, Dir: dir, Priority: PriorityIndexFile}, true
	case "not-found":
		if dir != "" {
			return Entry{}, false
		}
		return Entry{Kind: EntryNotFound, File: file}, true
	}

	if dir != "" && stem == path.Base(dir) {
		return Entry{Kind: EntryPage, File: file, Dir: dir, Priority: PriorityNamedFile}, true
	}
	return Entry{Kind: EntryPage, File: file, Dir: path.Join(dir, stem), Priority: PrioritySibling}, true
}

// NormalizeFile converts a file path to the slash-separated, root-relative
// form used as a Registry key.
func NormalizeFile(file string) string {
	file = strings.ReplaceAll(file, "\\", "/")
	file = strings.TrimPrefix(path.Clean("/"+file), "/")
	return file
}

func matchExtension(base string, extensions []string) string {
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(base, ext) {
			return ext
		}
	}
	return ""
}
