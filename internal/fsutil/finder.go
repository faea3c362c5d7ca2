// Package fsutil provides file system utility functions.
package fsutil

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFilesByExtension recursively searches the given root path for all files
// ending with the specified extension. If root is itself a matching file, it
// is returned alone. The result is sorted so callers see a deterministic,
// declaration-stable file order.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if strings.HasSuffix(rootPath, extension) {
			return []string{rootPath}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// IgnoreFileName is the per-tree ignore list recognized by LoadIgnorePatterns.
const IgnoreFileName = ".scaffignore"

// LoadIgnorePatterns reads doublestar glob patterns from root's ignore file,
// one per line. Blank lines and lines starting with '#' are skipped. A
// missing ignore file yields an empty pattern list.
func LoadIgnorePatterns(root string) ([]string, error) {
	f, err := os.Open(filepath.Join(root, IgnoreFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, scanner.Err()
}

// Ignored reports whether the slash-separated relative path matches any of
// the given doublestar patterns. Malformed patterns are treated as
// non-matching rather than failing the walk.
func Ignored(relPath string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, filepath.ToSlash(relPath)); err == nil && ok {
			return true
		}
	}
	return false
}
