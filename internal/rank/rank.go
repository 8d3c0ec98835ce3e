// Package rank reduces classifier and extractor output to bounded, sorted
// summaries. The bounds cap response size; there is no paging.
package rank

import (
	"cmp"
	"slices"

	t "codeviz/internal/types"
)

const (
	MaxLanguages = 5
	MaxRoutes    = 200
)

// TopLanguages orders counts by descending file count, then ascending name,
// and keeps at most n entries. n <= 0 keeps none.
func TopLanguages(counts map[string]int, n int) []t.LanguageCount {
	out := make([]t.LanguageCount, 0, len(counts))
	for name, files := range counts {
		out = append(out, t.LanguageCount{Name: name, Files: files})
	}
	slices.SortFunc(out, func(a, b t.LanguageCount) int {
		if c := cmp.Compare(b.Files, a.Files); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return truncate(out, n)
}

// UniqueRoutes drops every record whose (verb, path) was already seen,
// keeping the first occurrence and the input order.
func UniqueRoutes(routes []t.RouteRecord) []t.RouteRecord {
	seen := make(map[string]struct{}, len(routes))
	out := make([]t.RouteRecord, 0, len(routes))
	for _, r := range routes {
		key := r.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// SortRoutes sorts in place by (path, verb).
func SortRoutes(routes []t.RouteRecord) {
	slices.SortStableFunc(routes, func(a, b t.RouteRecord) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(a.Verb, b.Verb)
	})
}

// Routes deduplicates, sorts and truncates to at most limit records.
func Routes(routes []t.RouteRecord, limit int) []t.RouteRecord {
	out := UniqueRoutes(routes)
	SortRoutes(out)
	return truncate(out, limit)
}

func truncate[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		return s[:n:n]
	}
	return s
}
