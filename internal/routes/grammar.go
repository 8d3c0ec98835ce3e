// Package routes finds route declarations in source text with a regex
// heuristic. It does not parse the language.
package routes

import (
	"regexp"

	"github.com/gobwas/glob"
)

// Grammar pairs the files to read with the pattern to scan them for.
type Grammar struct {
	Name     string
	FileGlob string
	files    glob.Glob
	pattern  *regexp.Regexp
}

// Decorator recognizes Python decorator routes such as
//
//	@app.get("/items")
//	@router.POST('/items/{id}')
//
// The receiver identifier is captured as "via", the verb must be one of
// get/post/put/delete/patch/options/head in any case, and the path is the
// first quoted literal inside the parentheses, taken verbatim.
var Decorator = mustGrammar(
	"python-decorator",
	"*.py",
	`(?i)@(?P<via>\w+)\.(?P<verb>get|post|put|delete|patch|options|head)\(\s*["'](?P<path>[^"']*)["']`,
)

func mustGrammar(name, fileGlob, pattern string) *Grammar {
	return &Grammar{
		Name:     name,
		FileGlob: fileGlob,
		files:    glob.MustCompile(fileGlob, '/'),
		pattern:  regexp.MustCompile(pattern),
	}
}

// MatchesFile reports whether a base file name is covered by the grammar.
func (g *Grammar) MatchesFile(base string) bool {
	return g.files.Match(base)
}
