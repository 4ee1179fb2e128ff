package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestFileName is the project manifest's fixed file name. There is
// exactly one recognized name; no alternates are searched.
const ManifestFileName = "wgsla.toml"

// Manifest is a loaded wgsla.toml: its resolved path, the directory it
// lives in (the workspace root), and the Config it decoded to.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// rawManifest mirrors wgsla.toml's on-disk shape before string options
// are resolved to their enum values.
type rawManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Analysis struct {
		Validate   string `toml:"validate"`
		TypeErrors *bool  `toml:"type_errors"`
		InlayHints string `toml:"inlay_hints"`
		HoverDocs  string `toml:"hover_docs"`
		Workers    string `toml:"workers"`
	} `toml:"analysis"`
	Paths struct {
		Include []string `toml:"include"`
		Exclude []string `toml:"exclude"`
	} `toml:"paths"`
}

// Find walks up from startDir looking for wgsla.toml, stopping at the
// first directory that has one.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("config: resolving start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("config: stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load finds and decodes the manifest reachable from startDir. When none
// is found, ok is false and Config.Default() is what callers should use.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

func loadFile(path string) (Config, error) {
	var raw rawManifest
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: parsing TOML: %w", path, err)
	}
	if !meta.IsDefined("package") || strings.TrimSpace(raw.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}

	cfg := Default()
	cfg.PackageName = raw.Package.Name

	if meta.IsDefined("analysis", "validate") {
		mode, perr := parseValidationMode(raw.Analysis.Validate)
		if perr != nil {
			return Config{}, fmt.Errorf("%s: [analysis].validate: %w", path, perr)
		}
		cfg.Validation = mode
	}
	if raw.Analysis.TypeErrors != nil {
		cfg.TypeErrors = *raw.Analysis.TypeErrors
	}
	if meta.IsDefined("analysis", "inlay_hints") {
		mode, perr := parseInlayMode(raw.Analysis.InlayHints)
		if perr != nil {
			return Config{}, fmt.Errorf("%s: [analysis].inlay_hints: %w", path, perr)
		}
		cfg.Inlay = mode
	}
	if meta.IsDefined("analysis", "hover_docs") {
		format, perr := parseHoverDocFormat(raw.Analysis.HoverDocs)
		if perr != nil {
			return Config{}, fmt.Errorf("%s: [analysis].hover_docs: %w", path, perr)
		}
		cfg.HoverFormat = format
	}
	if meta.IsDefined("analysis", "workers") {
		mode, count, perr := parseWorkers(raw.Analysis.Workers)
		if perr != nil {
			return Config{}, fmt.Errorf("%s: [analysis].workers: %w", path, perr)
		}
		cfg.WorkerMode, cfg.WorkerCount = mode, count
	}

	if meta.IsDefined("paths", "include") {
		cfg.Include = raw.Paths.Include
	}
	if meta.IsDefined("paths", "exclude") {
		cfg.Exclude = raw.Paths.Exclude
	}
	return cfg, nil
}

func parseValidationMode(s string) (ValidationMode, error) {
	switch s {
	case "off":
		return ValidationOff, nil
	case "parse-only":
		return ValidationParseOnly, nil
	case "validate":
		return ValidationValidate, nil
	case "both":
		return ValidationBoth, nil
	default:
		return 0, fmt.Errorf("must be one of off|parse-only|validate|both, found %q", s)
	}
}

func parseInlayMode(s string) (InlayMode, error) {
	switch s {
	case "off":
		return InlayOff, nil
	case "compact":
		return InlayCompact, nil
	case "full":
		return InlayFull, nil
	case "inner":
		return InlayInner, nil
	default:
		return 0, fmt.Errorf("must be one of off|compact|full|inner, found %q", s)
	}
}

func parseHoverDocFormat(s string) (HoverDocFormat, error) {
	switch s {
	case "plain":
		return HoverPlain, nil
	case "markdown":
		return HoverMarkdown, nil
	default:
		return 0, fmt.Errorf("must be one of plain|markdown, found %q", s)
	}
}

func parseWorkers(s string) (WorkerMode, int, error) {
	switch s {
	case "auto":
		return WorkersAuto, 0, nil
	case "physical":
		return WorkersPhysical, 0, nil
	case "logical":
		return WorkersLogical, 0, nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return 0, 0, fmt.Errorf("must be auto|physical|logical|<positive integer>, found %q", s)
		}
		return WorkersFixed, n, nil
	}
}
