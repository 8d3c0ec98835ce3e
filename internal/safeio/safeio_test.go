package safeio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeFSAllowsAbsoluteUnderRoot(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(p, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs, err := NewSafeFS(dir)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	if _, err := fs.SafeReadFile(p); err != nil {
		t.Fatalf("SafeReadFile absolute: %v", err)
	}
}

func TestSafeFSRejectsTraversal(t *testing.T) {
	fs, err := NewSafeFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	if _, err := fs.SafeReadFile("../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestSafeFSRejectsSymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.py")
	if err := os.WriteFile(secret, []byte(`@app.get("/leak")`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	root := t.TempDir()
	if err := os.Symlink(secret, filepath.Join(root, "link.py")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	fs, err := NewSafeFS(root)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	if _, err := fs.ReadText("link.py"); err == nil {
		t.Fatalf("expected symlink outside root to be rejected")
	}
}

func TestReadTextDropsInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	content := append([]byte(`@app.get("/a`), 0xff, 0xfe)
	content = append(content, []byte(`b")`)...)
	if err := os.WriteFile(filepath.Join(root, "x.py"), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs, err := NewSafeFS(root)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	got, err := fs.ReadText("x.py")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if want := `@app.get("/ab")`; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSafeReadDirSorted(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b", "a", "c.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	fs, err := NewSafeFS(root)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	entries, err := fs.SafeReadDir(".")
	if err != nil {
		t.Fatalf("SafeReadDir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c.txt" {
		t.Fatalf("names = %v", names)
	}
}
