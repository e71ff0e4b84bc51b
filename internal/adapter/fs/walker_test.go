package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("reviewer,review\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkMatchesIncludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "reviews.csv"))
	writeFile(t, filepath.Join(root, "data", "more.csv"))
	writeFile(t, filepath.Join(root, "notes.txt"))

	w := NewWalker(nil, nil) // defaults to **/*.csv
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 csv files, got %d: %v", len(files), files)
	}
	// Sorted by path: data/more.csv before reviews.csv.
	if filepath.Base(files[0].Path) != "more.csv" || filepath.Base(files[1].Path) != "reviews.csv" {
		t.Errorf("unexpected order: %v", files)
	}
}

func TestWalkHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.csv"))
	writeFile(t, filepath.Join(root, "skip", "drop.csv"))

	w := NewWalker([]string{"**/*.csv"}, []string{"**/skip/**"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 || filepath.Base(files[0].Path) != "keep.csv" {
		t.Errorf("expected only keep.csv, got %v", files)
	}
}

func TestWalkReportsModTime(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "reviews.csv")
	writeFile(t, path)

	w := NewWalker(nil, nil)
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if files[0].ModTime != info.ModTime().Unix() {
		t.Errorf("mod time mismatch: %d vs %d", files[0].ModTime, info.ModTime().Unix())
	}
}
