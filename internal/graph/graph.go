// Package graph turns ranked languages and routes into a flat node/edge
// structure for visualization.
package graph

import (
	t "codeviz/internal/types"
)

const (
	langPrefix  = "lang:"
	routePrefix = "route:"
)

// LanguageID returns the node id of a language.
func LanguageID(name string) string { return langPrefix + name }

// RouteID returns the node id of a route.
func RouteID(r t.RouteRecord) string { return routePrefix + r.Verb + " " + r.Path }

// Build emits one node per language, one node per route, and one "uses" edge
// from the first (highest ranked) language to every route. Routes are not
// attributed to the language of the file they came from.
//
// With no languages there is no edge source, so no edges are emitted rather
// than pointing at a node that does not exist.
func Build(langs []t.LanguageCount, routes []t.RouteRecord) t.Graph {
	g := t.Graph{
		Nodes: make([]t.GraphNode, 0, len(langs)+len(routes)),
		Edges: []t.GraphEdge{},
	}
	g.Nodes = append(g.Nodes, LanguageNodes(langs)...)
	g.Nodes = append(g.Nodes, RouteNodes(routes)...)
	g.Edges = append(g.Edges, ConnectLanguagesToRoutes(langs, routes)...)
	return g
}

// LanguageNodes sizes each node by its file count, never below 1.
func LanguageNodes(langs []t.LanguageCount) []t.GraphNode {
	out := make([]t.GraphNode, 0, len(langs))
	for _, l := range langs {
		size := max(1, l.Files)
		out = append(out, t.GraphNode{
			ID:    LanguageID(l.Name),
			Type:  t.NodeLanguage,
			Label: l.Name,
			Size:  &size,
		})
	}
	return out
}

func RouteNodes(routes []t.RouteRecord) []t.GraphNode {
	out := make([]t.GraphNode, 0, len(routes))
	for _, r := range routes {
		out = append(out, t.GraphNode{
			ID:    RouteID(r),
			Type:  t.NodeRoute,
			Label: r.Key(),
		})
	}
	return out
}

func ConnectLanguagesToRoutes(langs []t.LanguageCount, routes []t.RouteRecord) []t.GraphEdge {
	if len(langs) == 0 {
		return nil
	}
	src := LanguageID(langs[0].Name)
	out := make([]t.GraphEdge, 0, len(routes))
	for _, r := range routes {
		out = append(out, t.GraphEdge{
			Source: src,
			Target: RouteID(r),
			Type:   t.EdgeUses,
		})
	}
	return out
}
