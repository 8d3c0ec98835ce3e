package lang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
}

func TestClassify_PythonAndJavaScript(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.py")
	write(t, root, "b.py")
	write(t, root, "c.js")

	counts, err := Classify(root)
	require.NoError(t, err)
	assert.Equal(t, Counts{"Python": 2, "JavaScript": 1}, counts)
}

func TestClassify_EveryExtensionCountsOnce(t *testing.T) {
	for _, ext := range Extensions() {
		t.Run(ext, func(t *testing.T) {
			root := t.TempDir()
			write(t, root, "file"+ext)

			counts, err := Classify(root)
			require.NoError(t, err)

			want, ok := Lookup(ext)
			require.True(t, ok)
			assert.Equal(t, Counts{want: 1}, counts)
		})
	}
}

func TestClassify_UnknownExtensionsIgnored(t *testing.T) {
	root := t.TempDir()
	write(t, root, "README.md")
	write(t, root, "Makefile")
	write(t, root, "logo.svg")
	write(t, root, ".json")

	counts, err := Classify(root)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestClassify_CaseInsensitiveExtension(t *testing.T) {
	root := t.TempDir()
	write(t, root, "Main.PY")
	write(t, root, "App.Tsx")

	counts, err := Classify(root)
	require.NoError(t, err)
	assert.Equal(t, Counts{"Python": 1, "TypeScript": 1}, counts)
}

func TestClassify_ExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/app.go")
	write(t, root, "tests/test_app.py")
	write(t, root, "src/docs/conf.py")
	write(t, root, ".github/workflows/ci.yml")
	write(t, root, ".git/hooks/pre-commit.py")

	counts, err := Classify(root)
	require.NoError(t, err)
	assert.Equal(t, Counts{"Go": 1}, counts)
}

func TestLookup(t *testing.T) {
	name, ok := Lookup("YAML")
	assert.True(t, ok)
	assert.Equal(t, "YAML", name)

	name, ok = Lookup(".Cpp")
	assert.True(t, ok)
	assert.Equal(t, "C++", name)

	_, ok = Lookup("")
	assert.False(t, ok)
	_, ok = Lookup(".md")
	assert.False(t, ok)
}

func TestCountsList(t *testing.T) {
	list := Counts{"Go": 3}.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Go", list[0].Name)
	assert.Equal(t, 3, list[0].Files)
}

func TestClassify_SymlinkedDirectoryNotCounted(t *testing.T) {
	root := t.TempDir()
	write(t, root, "pkg/main.go")
	if err := os.Symlink(filepath.Join(root, "pkg"), filepath.Join(root, "vendor.py")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	counts, err := Classify(root)
	require.NoError(t, err)
	assert.Equal(t, Counts{"Go": 1}, counts)
}
