package routes

import (
	"fmt"
	"log"
	"strings"

	"codeviz/internal/common/scan"
	"codeviz/internal/safeio"
	t "codeviz/internal/types"
)

// Extract scans every grammar file under root and returns one record per
// match, in file path order then text order. Duplicates are kept.
// Files that cannot be read are skipped.
func Extract(root string) ([]t.RouteRecord, error) {
	return ExtractWithGrammar(root, Decorator, scan.Options{})
}

// ExtractWithGrammar is Extract with an explicit grammar and scan options.
func ExtractWithGrammar(root string, g *Grammar, opts scan.Options) ([]t.RouteRecord, error) {
	fsys, err := safeio.NewSafeFS(root)
	if err != nil {
		return nil, fmt.Errorf("extract routes: %w", err)
	}
	files, err := scan.FilesMatchingGlob(root, g.files, opts)
	if err != nil {
		return nil, fmt.Errorf("extract routes: %w", err)
	}

	var out []t.RouteRecord
	for _, rel := range files {
		text, err := fsys.ReadText(rel)
		if err != nil {
			log.Printf("extract routes: skip %s: %v", rel, err)
			continue
		}
		out = append(out, g.ExtractText(rel, text)...)
	}
	return out, nil
}

// ExtractText applies the grammar to one file's text. file should already be
// repo-relative; backslashes are normalized to forward slashes.
func (g *Grammar) ExtractText(file, text string) []t.RouteRecord {
	matches := g.pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	file = strings.ReplaceAll(file, `\`, "/")
	via := g.pattern.SubexpIndex("via")
	verb := g.pattern.SubexpIndex("verb")
	path := g.pattern.SubexpIndex("path")

	out := make([]t.RouteRecord, 0, len(matches))
	for _, m := range matches {
		out = append(out, t.RouteRecord{
			File: file,
			Verb: strings.ToUpper(m[verb]),
			Path: m[path],
			Via:  m[via],
		})
	}
	return out
}
