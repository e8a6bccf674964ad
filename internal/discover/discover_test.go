package discover

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("# source\n"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverBasic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notifiers.rb")
	writeFile(t, dir, "admin/users.rb")
	writeFile(t, dir, "admin.rb")
	writeFile(t, dir, "README.md")

	files, err := Discover(context.Background(), dir, &Options{Extension: ".rb"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{"admin.rb", "admin/users.rb", "notifiers.rb"}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(files), files)
	}
	for i, f := range files {
		if f.RelPath != want[i] {
			t.Errorf("files[%d].RelPath = %q, want %q", i, f.RelPath, want[i])
		}
		if !filepath.IsAbs(f.Path) {
			t.Errorf("files[%d].Path not absolute: %q", i, f.Path)
		}
	}
}

func TestDiscoverSkipsHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".git/hooks/thing.rb")
	writeFile(t, dir, ".hidden.rb")
	writeFile(t, dir, "visible.rb")

	files, err := Discover(context.Background(), dir, &Options{Extension: ".rb"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "visible.rb" {
		t.Fatalf("expected only visible.rb, got %v", files)
	}
}

func TestDiscoverNoExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rb")
	writeFile(t, dir, "b.py")

	files, err := Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestDiscoverCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.rb")

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // pre-cancel

	_, err := Discover(ctx, dir, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
