package config

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover walks root and returns every file matching cfg.Include that
// does not also match cfg.Exclude, relative-path glob matching following
// the `**`-aware pattern termfx-morfx's FileWalker uses
// (doublestar.PathMatch against the root-relative path, falling back to a
// basename match for a pattern with no path separator), simplified here
// to a single serial walk since a workspace of WGSL shader sources is
// small enough that a worker-pool traversal would be pure overhead.
func Discover(root string, cfg Config) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if len(name) > 1 && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(rel, cfg.Include) {
			return nil
		}
		if matchesAny(rel, cfg.Exclude) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if matched, err := doublestar.Match(pattern, filepath.Base(relPath)); err == nil && matched {
				return true
			}
		}
	}
	return false
}
