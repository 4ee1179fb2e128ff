package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"wgsla/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new wgsla project",
	Long: `init creates a project manifest (wgsla.toml) and a sample shader entry
point (main.wgsl) in the target directory. If [path] is omitted, the current
directory is initialized.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "wgsla-project"
	}

	manifestPath := filepath.Join(target, config.ManifestFileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := defaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	entryPath := filepath.Join(target, "main.wgsl")
	createdEntry := false
	if _, err := os.Stat(entryPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(entryPath, []byte(defaultEntryShader()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.wgsl: %w", err)
		}
		createdEntry = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized wgsla project in %s\n", rel)
	fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", config.ManifestFileName)
	if createdEntry {
		fmt.Fprintln(cmd.OutOrStdout(), "  - main.wgsl")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "  - main.wgsl (existing)")
	}
	return nil
}

func defaultManifest(name string) string {
	return fmt.Sprintf(`# wgsla project manifest
[package]
name = "%s"

[analysis]
validate = "both"
type_errors = true
inlay_hints = "compact"
hover_docs = "markdown"
workers = "auto"

[paths]
include = ["**/*.wgsl"]
exclude = []
`, name)
}

func defaultEntryShader() string {
	return `// wgsla sample shader (placeholder)

struct VertexOut {
    @builtin(position) position: vec4<f32>,
}

@vertex
fn vs_main(@location(0) pos: vec3<f32>) -> VertexOut {
    var out: VertexOut;
    out.position = vec4<f32>(pos, 1.0);
    return out;
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`
}
