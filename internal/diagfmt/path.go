package diagfmt

import "path/filepath"

// formatPath renders path per mode, falling back to path unchanged when
// the requested transform fails (e.g. no common root for Rel).
func formatPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeRelative:
		return relativeTo(path, baseDir)
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if baseDir != "" {
			return relativeTo(path, baseDir)
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	default:
		return path
	}
}

func relativeTo(path, baseDir string) string {
	if baseDir == "" {
		return path
	}
	if rel, err := filepath.Rel(baseDir, path); err == nil {
		return rel
	}
	return path
}
