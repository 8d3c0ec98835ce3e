package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// defaultIgnoreDirs are directory names never descended into: VCS metadata,
// CI configuration, documentation and tests. Matching is by exact name at any
// depth, and everything below a matched directory is skipped.
var defaultIgnoreDirs = []string{".git", ".github", "docs", "docs_src", "tests"}

// DefaultIgnoreDirs returns a copy of the default exclusion set.
func DefaultIgnoreDirs() []string {
	out := make([]string, len(defaultIgnoreDirs))
	copy(out, defaultIgnoreDirs)
	return out
}

// FileVisit carries per-entry metadata to user callbacks.
type FileVisit struct {
	// Repo-relative path using forward slashes (e.g., "app/main.py").
	Path string
	// Absolute filesystem path.
	AbsPath string
	// True when the entry is a directory.
	IsDir bool
	// Lowercased extension (e.g., ".py"); empty for dirs, dotfiles and no-ext files.
	Ext string
}

// VisitFunc is invoked for every visited entry.
type VisitFunc func(f FileVisit)

// Options tunes a traversal.
type Options struct {
	// IgnoreDirs are directory names to skip. Nil means DefaultIgnoreDirs;
	// an empty non-nil slice disables exclusion.
	IgnoreDirs []string
	// MaxDepth limits descent below root (1 = root entries only). 0 means unlimited.
	MaxDepth int
}

func (o Options) ignoreSet() map[string]struct{} {
	dirs := o.IgnoreDirs
	if dirs == nil {
		dirs = defaultIgnoreDirs
	}
	set := make(map[string]struct{}, len(dirs))
	for _, d := range dirs {
		d = strings.TrimSpace(d)
		if d != "" {
			set[d] = struct{}{}
		}
	}
	return set
}

// ScanWithOptions walks root once, in lexical order, and calls cb for every
// entry not excluded by opts. Unreadable entries are skipped rather than
// aborting the walk. Symlinked directories are not descended into or reported.
func ScanWithOptions(root string, opts Options, cb VisitFunc) error {
	ignore := opts.ignoreSet()
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		depth := strings.Count(rel, "/") + 1

		if d.IsDir() {
			if _, skip := ignore[d.Name()]; skip {
				return filepath.SkipDir
			}
			if cb != nil {
				cb(FileVisit{Path: rel, AbsPath: path, IsDir: true})
			}
			if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if opts.MaxDepth > 0 && depth > opts.MaxDepth {
			return nil
		}
		// WalkDir reports a link to a directory as a file; it is neither
		// followed nor counted.
		if d.Type()&fs.ModeSymlink != 0 {
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				return nil
			}
		}
		if cb != nil {
			cb(FileVisit{Path: rel, AbsPath: path, Ext: Ext(d.Name())})
		}
		return nil
	})
}

// Ext returns the lowercased extension of a file name. Leading dots do not
// start an extension, so ".json" and ".bashrc" have none while
// ".eslintrc.json" has ".json".
func Ext(name string) string {
	base := strings.TrimLeft(filepath.Base(name), ".")
	if base == "" {
		return ""
	}
	return strings.ToLower(filepath.Ext(base))
}
