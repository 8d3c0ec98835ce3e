package rank

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeviz/internal/types"
)

func TestTopLanguages(t *testing.T) {
	t.Run("orders by count then name", func(t *testing.T) {
		got := TopLanguages(map[string]int{"JavaScript": 1, "Python": 2, "Go": 2}, MaxLanguages)
		assert.Equal(t, []types.LanguageCount{
			{Name: "Go", Files: 2},
			{Name: "Python", Files: 2},
			{Name: "JavaScript", Files: 1},
		}, got)
	})

	t.Run("truncates to n", func(t *testing.T) {
		counts := map[string]int{}
		for i := range 12 {
			counts[fmt.Sprintf("L%02d", i)] = i + 1
		}
		got := TopLanguages(counts, MaxLanguages)
		require.Len(t, got, MaxLanguages)
		assert.Equal(t, "L11", got[0].Name)
		assert.Equal(t, "L07", got[4].Name)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, TopLanguages(nil, MaxLanguages))
	})

	t.Run("non-positive n", func(t *testing.T) {
		assert.Empty(t, TopLanguages(map[string]int{"Go": 1}, 0))
		assert.Empty(t, TopLanguages(map[string]int{"Go": 1}, -3))
	})
}

func TestUniqueRoutes(t *testing.T) {
	in := []types.RouteRecord{
		{File: "a.py", Verb: "GET", Path: "/x", Via: "app"},
		{File: "b.py", Verb: "GET", Path: "/x", Via: "router"},
		{File: "b.py", Verb: "POST", Path: "/x", Via: "router"},
		{File: "c.py", Verb: "GET", Path: "/y", Via: "app"},
	}

	t.Run("keeps first per verb and path", func(t *testing.T) {
		got := UniqueRoutes(in)
		require.Len(t, got, 3)
		assert.Equal(t, "a.py", got[0].File)
		assert.Equal(t, "app", got[0].Via)
		assert.Equal(t, "POST", got[1].Verb)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := UniqueRoutes(in)
		assert.Equal(t, once, UniqueRoutes(once))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		cp := append([]types.RouteRecord(nil), in...)
		_ = UniqueRoutes(in)
		assert.Equal(t, cp, in)
	})
}

func TestSortRoutes(t *testing.T) {
	routes := []types.RouteRecord{
		{Verb: "POST", Path: "/b"},
		{Verb: "GET", Path: "/b"},
		{Verb: "DELETE", Path: "/a"},
		{Verb: "GET", Path: ""},
	}
	SortRoutes(routes)
	assert.Equal(t, []types.RouteRecord{
		{Verb: "GET", Path: ""},
		{Verb: "DELETE", Path: "/a"},
		{Verb: "GET", Path: "/b"},
		{Verb: "POST", Path: "/b"},
	}, routes)
}

func TestRoutes(t *testing.T) {
	t.Run("dedup then sort", func(t *testing.T) {
		got := Routes([]types.RouteRecord{
			{File: "b.py", Verb: "GET", Path: "/x", Via: "b"},
			{File: "a.py", Verb: "GET", Path: "/x", Via: "a"},
			{File: "a.py", Verb: "GET", Path: "/a", Via: "a"},
		}, MaxRoutes)
		require.Len(t, got, 2)
		assert.Equal(t, "/a", got[0].Path)
		assert.Equal(t, "b.py", got[1].File)
	})

	t.Run("hard limit", func(t *testing.T) {
		var in []types.RouteRecord
		for i := range 500 {
			in = append(in, types.RouteRecord{Verb: "GET", Path: fmt.Sprintf("/r/%03d", i)})
		}
		got := Routes(in, MaxRoutes)
		require.Len(t, got, MaxRoutes)
		assert.Equal(t, "/r/000", got[0].Path)
		assert.Equal(t, "/r/199", got[MaxRoutes-1].Path)
	})

	t.Run("nil input", func(t *testing.T) {
		got := Routes(nil, MaxRoutes)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
