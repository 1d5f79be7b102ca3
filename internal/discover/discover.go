package discover

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/texelstream/png2dds/pipeline"
)

// Options controls how Find resolves an input argument into path pairs.
type Options struct {
	// Output, if non-empty, mirrors the input directory tree under this
	// root instead of writing .dds files next to their .png source.
	Output string
	// Overwrite, when false, skips sources whose destination already
	// exists.
	Overwrite bool
	// Depth caps recursive directory traversal; 0 means unlimited.
	Depth int
	// Pattern, if non-nil, restricts matches to source paths it matches.
	Pattern *regexp.Regexp
}

const pngExtension = ".png"
const manifestExtension = ".txt"

// Find resolves input (a PNG file, a directory, or a .txt manifest
// listing files and directories) into the sorted, deduplicated list of
// path pairs to convert.
func Find(input string, opts Options) ([]pipeline.PathPair, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", input, err)
	}

	var pairs []pipeline.PathPair
	switch {
	case info.IsDir():
		outputRoot := opts.Output
		different := outputRoot != ""
		if !different {
			outputRoot = input
		}
		pairs, err = walkDirectory(input, outputRoot, different, opts)
		if err != nil {
			return nil, err
		}
	case isValidSource(input, opts.Pattern):
		dest := opts.Output
		if dest == "" {
			dest = filepath.Dir(input)
		}
		pairs = addIfEligible(nil, input, toDDSPath(input, dest), opts.Overwrite)
	case strings.EqualFold(filepath.Ext(input), manifestExtension):
		pairs, err = readManifest(input, opts)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%q is not a PNG file, a directory, or a .txt manifest", input)
	}

	return dedupe(pairs), nil
}

func isValidSource(path string, pattern *regexp.Regexp) bool {
	if !strings.EqualFold(filepath.Ext(path), pngExtension) {
		return false
	}
	if pattern != nil && !pattern.MatchString(path) {
		return false
	}
	return true
}

func toDDSPath(pngPath, outputDir string) string {
	base := filepath.Base(pngPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".dds")
}

func addIfEligible(pairs []pipeline.PathPair, source, dest string, overwrite bool) []pipeline.PathPair {
	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return pairs
		}
	}
	return append(pairs, pipeline.PathPair{Source: source, Destination: dest})
}

// walkDirectory recursively walks input, matching .png files against
// opts.Pattern, optionally mirroring the tree under a different output
// root, and respecting opts.Depth.
func walkDirectory(input, outputRoot string, different bool, opts Options) ([]pipeline.PathPair, error) {
	var pairs []pipeline.PathPair
	baseDepth := strings.Count(filepath.Clean(input), string(filepath.Separator))

	err := filepath.WalkDir(input, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if opts.Depth > 0 && path != input {
				depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - baseDepth
				if depth >= opts.Depth {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !isValidSource(path, opts.Pattern) {
			return nil
		}

		outputDir := filepath.Dir(path)
		if different {
			rel, err := filepath.Rel(input, filepath.Dir(path))
			if err != nil {
				return err
			}
			outputDir = filepath.Join(outputRoot, rel)
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory %q: %w", outputDir, err)
			}
		}

		dest := toDDSPath(path, outputDir)
		pairs = addIfEligible(pairs, path, dest, opts.Overwrite)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %q: %w", input, err)
	}
	return pairs, nil
}

func readManifest(manifestPath string, opts Options) ([]pipeline.PathPair, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open manifest %q: %w", manifestPath, err)
	}
	defer func() { _ = f.Close() }()

	var pairs []pipeline.PathPair
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		info, err := os.Stat(line)
		if err != nil {
			slog.Default().Warn("manifest entry not found, skipping", "path", line, "error", err)
			continue
		}
		if info.IsDir() {
			found, err := walkDirectory(line, line, false, opts)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, found...)
			continue
		}
		if isValidSource(line, opts.Pattern) {
			pairs = addIfEligible(pairs, line, toDDSPath(line, filepath.Dir(line)), opts.Overwrite)
			continue
		}
		slog.Default().Warn("manifest entry is not a PNG file or a directory", "path", line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest %q: %w", manifestPath, err)
	}
	return pairs, nil
}

// dedupe sorts pairs by source path and removes exact duplicates.
func dedupe(pairs []pipeline.PathPair) []pipeline.PathPair {
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Source < pairs[j].Source })
	out := pairs[:0]
	for i, p := range pairs {
		if i == 0 || p != pairs[i-1] {
			out = append(out, p)
		}
	}
	return out
}
