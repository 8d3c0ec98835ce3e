// Package lang classifies files by extension and tallies them per language.
package lang

import (
	"sort"
	"strings"
)

// extToLang is fixed at process start and never mutated.
var extToLang = map[string]string{
	".py":   "Python",
	".js":   "JavaScript",
	".jsx":  "JavaScript",
	".ts":   "TypeScript",
	".tsx":  "TypeScript",
	".java": "Java",
	".go":   "Go",
	".rb":   "Ruby",
	".cs":   "C#",
	".php":  "PHP",
	".rs":   "Rust",
	".kt":   "Kotlin",
	".c":    "C",
	".cpp":  "C++",
	".yml":  "YAML",
	".yaml": "YAML",
	".json": "JSON",
}

// Lookup returns the language for an extension such as ".py" or "PY".
func Lookup(ext string) (string, bool) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return "", false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name, ok := extToLang[ext]
	return name, ok
}

// Extensions returns every recognized extension, sorted.
func Extensions() []string {
	out := make([]string, 0, len(extToLang))
	for ext := range extToLang {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
