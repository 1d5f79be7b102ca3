package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/texelstream/png2dds/internal/mipmap"
)

func writeTestPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRunConvertsEveryFile(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a", "b", "c"}
	paths := make([]PathPair, 0, 3)
	for i, dims := range [][2]int{{5, 5}, {17, 9}, {4, 4}} {
		src := filepath.Join(dir, names[i]+".png")
		writeTestPNG(t, src, dims[0], dims[1])
		paths = append(paths, PathPair{Source: src, Destination: filepath.Join(dir, names[i]+".dds")})
	}

	reporter := NewReporter(&bytes.Buffer{}, &bytes.Buffer{}, len(paths), false)
	cfg := Config{Parallelism: 2, Tokens: 2, Mipmaps: true, Format: FormatBC1, Quality: 3}

	if err := Run(context.Background(), paths, cfg, reporter); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reporter.Completed() != len(paths) {
		t.Errorf("Completed() = %d, want %d", reporter.Completed(), len(paths))
	}
	for _, p := range paths {
		if _, err := os.Stat(p.Destination); err != nil {
			t.Errorf("missing output %q: %v", p.Destination, err)
		}
	}
}

func TestRunIsolatesPerFileFailures(t *testing.T) {
	dir := t.TempDir()
	goodSrc := filepath.Join(dir, "good.png")
	writeTestPNG(t, goodSrc, 8, 8)
	badSrc := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(badSrc, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths := []PathPair{
		{Source: badSrc, Destination: filepath.Join(dir, "bad.dds")},
		{Source: goodSrc, Destination: filepath.Join(dir, "good.dds")},
	}

	reporter := NewReporter(&bytes.Buffer{}, &bytes.Buffer{}, len(paths), false)
	cfg := Config{Parallelism: 2, Tokens: 2, Format: FormatBC1, Quality: 1}

	if err := Run(context.Background(), paths, cfg, reporter); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reporter.Completed() != 1 {
		t.Errorf("Completed() = %d, want 1 (only the good file)", reporter.Completed())
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.dds")); err == nil {
		t.Error("bad.dds should not have been written")
	}
	if _, err := os.Stat(filepath.Join(dir, "good.dds")); err != nil {
		t.Errorf("good.dds missing: %v", err)
	}
}

func TestRunRejectsEmptyInput(t *testing.T) {
	reporter := NewReporter(&bytes.Buffer{}, &bytes.Buffer{}, 1, false)
	cfg := Config{Parallelism: 1, Tokens: 1, Format: FormatBC1}
	if err := Run(context.Background(), nil, cfg, reporter); err != ErrNoFiles {
		t.Fatalf("err = %v, want ErrNoFiles", err)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	reporter := NewReporter(&bytes.Buffer{}, &bytes.Buffer{}, 1, false)
	paths := []PathPair{{Source: "a.png", Destination: "a.dds"}}

	if err := Run(context.Background(), paths, Config{Parallelism: 0, Tokens: 1, Format: FormatBC1}, reporter); err != ErrInvalidParallelism {
		t.Errorf("err = %v, want ErrInvalidParallelism", err)
	}
	if err := Run(context.Background(), paths, Config{Parallelism: 1, Tokens: 0, Format: FormatBC1}, reporter); err != ErrInvalidTokens {
		t.Errorf("err = %v, want ErrInvalidTokens", err)
	}
	badFilter := Config{Parallelism: 1, Tokens: 1, Format: FormatBC1, Filter: mipmap.Filter(99)}
	if err := Run(context.Background(), paths, badFilter, reporter); err != ErrUnknownFilter {
		t.Errorf("err = %v, want ErrUnknownFilter", err)
	}
}
