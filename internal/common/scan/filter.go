package scan

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// FilesMatching walks root and returns repo-relative paths of files whose base
// name matches pattern (gobwas/glob syntax, case-sensitive). Results are
// sorted so callers see a stable encounter order.
func FilesMatching(root, pattern string, opts Options) ([]string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, nil
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("scan: compile pattern %q: %w", pattern, err)
	}
	return FilesMatchingGlob(root, g, opts)
}

// FilesMatchingGlob is FilesMatching with a precompiled matcher.
func FilesMatchingGlob(root string, g glob.Glob, opts Options) ([]string, error) {
	var files []string
	err := ScanWithOptions(root, opts, func(fv FileVisit) {
		if fv.IsDir {
			return
		}
		if !g.Match(path.Base(fv.Path)) {
			return
		}
		files = append(files, fv.Path)
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
