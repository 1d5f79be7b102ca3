package discover

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("fake png"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindSingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writeFile(t, src)

	pairs, err := Find(src, Options{Overwrite: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1", len(pairs))
	}
	if pairs[0].Source != src {
		t.Errorf("source = %q, want %q", pairs[0].Source, src)
	}
	if pairs[0].Destination != filepath.Join(dir, "a.dds") {
		t.Errorf("destination = %q, want a.dds next to source", pairs[0].Destination)
	}
}

func TestFindDirectoryRecursesAndSortsDeterministically(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.png"))
	writeFile(t, filepath.Join(dir, "a.png"))
	writeFile(t, filepath.Join(dir, "sub", "c.png"))
	writeFile(t, filepath.Join(dir, "not_an_image.txt"))

	pairs, err := Find(dir, Options{Overwrite: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("len(pairs) = %d, want 3: %+v", len(pairs), pairs)
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i-1].Source >= pairs[i].Source {
			t.Errorf("pairs not sorted: %q >= %q", pairs[i-1].Source, pairs[i].Source)
		}
	}
}

func TestFindSkipsExistingDestinationUnlessOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writeFile(t, src)
	writeFile(t, filepath.Join(dir, "a.dds"))

	pairs, err := Find(dir, Options{Overwrite: false})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("len(pairs) = %d, want 0 (existing destination skipped)", len(pairs))
	}

	pairs, err = Find(dir, Options{Overwrite: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1 with overwrite", len(pairs))
	}
}

func TestFindMirrorsOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "c.png"))

	pairs, err := Find(dir, Options{Output: out, Overwrite: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1", len(pairs))
	}
	want := filepath.Join(out, "sub", "c.dds")
	if pairs[0].Destination != want {
		t.Errorf("destination = %q, want %q", pairs[0].Destination, want)
	}
}

func TestFindAppliesPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep_me.png"))
	writeFile(t, filepath.Join(dir, "skip_me.png"))

	pairs, err := Find(dir, Options{Overwrite: true, Pattern: regexp.MustCompile("keep")})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1", len(pairs))
	}
}

func TestFindManifestListsFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.png"))
	writeFile(t, filepath.Join(dir, "sub", "b.png"))

	manifest := filepath.Join(dir, "list.txt")
	content := filepath.Join(dir, "a.png") + "\n" + filepath.Join(dir, "sub") + "\n"
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	pairs, err := Find(manifest, Options{Overwrite: true})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("len(pairs) = %d, want 2: %+v", len(pairs), pairs)
	}
}

func TestFindRejectsUnrecognizedInput(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "notes.md")
	writeFile(t, other)

	if _, err := Find(other, Options{}); err == nil {
		t.Fatal("expected error for non-PNG, non-directory, non-manifest input")
	}
}
