package graph

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeviz/internal/types"
)

func TestBuild(t *testing.T) {
	langs := []types.LanguageCount{{Name: "Python", Files: 2}, {Name: "JavaScript", Files: 0}}
	routes := []types.RouteRecord{
		{File: "main.py", Verb: "GET", Path: "/items", Via: "app"},
		{File: "main.py", Verb: "POST", Path: "/items", Via: "router"},
	}

	g := Build(langs, routes)

	t.Run("node and edge counts", func(t *testing.T) {
		assert.Len(t, g.Nodes, len(langs)+len(routes))
		assert.Len(t, g.Edges, len(routes))
	})

	t.Run("language nodes", func(t *testing.T) {
		n := g.Nodes[0]
		assert.Equal(t, "lang:Python", n.ID)
		assert.Equal(t, types.NodeLanguage, n.Type)
		assert.Equal(t, "Python", n.Label)
		require.NotNil(t, n.Size)
		assert.Equal(t, 2, *n.Size)

		require.NotNil(t, g.Nodes[1].Size)
		assert.Equal(t, 1, *g.Nodes[1].Size, "size is clamped to at least 1")
	})

	t.Run("route nodes", func(t *testing.T) {
		n := g.Nodes[2]
		assert.Equal(t, "route:GET /items", n.ID)
		assert.Equal(t, types.NodeRoute, n.Type)
		assert.Equal(t, "GET /items", n.Label)
		assert.Nil(t, n.Size)
	})

	t.Run("edges come from the top language", func(t *testing.T) {
		for _, e := range g.Edges {
			assert.Equal(t, "lang:Python", e.Source)
			assert.Equal(t, types.EdgeUses, e.Type)
		}
		assert.Equal(t, "route:POST /items", g.Edges[1].Target)
	})

	t.Run("every edge references existing nodes", func(t *testing.T) {
		ids := map[string]bool{}
		for _, n := range g.Nodes {
			ids[n.ID] = true
		}
		for _, e := range g.Edges {
			assert.True(t, ids[e.Source], e.Source)
			assert.True(t, ids[e.Target], e.Target)
		}
	})
}

func TestBuild_NoLanguagesSuppressesEdges(t *testing.T) {
	g := Build(nil, []types.RouteRecord{{Verb: "GET", Path: "/x"}})
	assert.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Edges)
	for _, n := range g.Nodes {
		assert.NotEqual(t, "lang:Unknown", n.ID)
	}
}

func TestBuild_EmptyGraphEncodesAsArrays(t *testing.T) {
	b, err := json.Marshal(Build(nil, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(b))
}

func TestBuild_NodeIDsUnique(t *testing.T) {
	var langs []types.LanguageCount
	for i := range 5 {
		langs = append(langs, types.LanguageCount{Name: fmt.Sprintf("L%d", i), Files: i})
	}
	var routes []types.RouteRecord
	for i := range 20 {
		routes = append(routes, types.RouteRecord{Verb: "GET", Path: fmt.Sprintf("/%d", i)})
	}
	g := Build(langs, routes)

	seen := map[string]bool{}
	for _, n := range g.Nodes {
		assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
	}
}
