package tempfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGuardLifecycle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scratch")

	g, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	path := g.Path()
	if path == "" {
		t.Fatal("guard owns no path")
	}
	if filepath.Dir(path) != dir {
		t.Errorf("file minted in %s, expected %s", filepath.Dir(path), dir)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("minted file missing: %v", err)
	}

	if err := g.Remove(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file survived Remove")
	}
	if g.Path() != "" {
		t.Error("guard still owns a path after Remove")
	}

	// removing again is a no-op
	if err := g.Remove(); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestGuardCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	g, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Remove()

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("scratch directory not created: %v", err)
	}
}

func TestGuardRelease(t *testing.T) {
	g, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := g.Release()
	if path == "" {
		t.Fatal("release returned no path")
	}
	if g.Path() != "" {
		t.Error("guard still owns the path after Release")
	}

	// the released path is no longer the guard's to delete
	if err := g.Remove(); err != nil {
		t.Fatalf("Remove after Release: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("released file was deleted by the guard")
	}
	os.Remove(path)

	// a second Release hands out nothing
	if g.Release() != "" {
		t.Error("second Release returned a path")
	}
}

func TestDistinctNames(t *testing.T) {
	dir := t.TempDir()
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		g, err := New(dir)
		if err != nil {
			t.Fatal(err)
		}
		defer g.Remove()
		if seen[g.Path()] {
			t.Fatalf("duplicate scratch path %s", g.Path())
		}
		seen[g.Path()] = true
	}
}
