package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wgsla/internal/config"
	"wgsla/internal/diagfmt"
	"wgsla/internal/query"
	"wgsla/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.wgsl|directory>",
	Short: "Run diagnostics on a WGSL source file or directory",
	Long:  `check runs the lexer, parser, item tree, resolver and inference passes over a file or every matching file in a directory, printing the resulting diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("disk-cache", false, "enable the persistent summary cache for repeated cold-start runs")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory priming (0=auto)")
	checkCmd.Flags().Bool("explain", false, "print a textual explain rendering (span, type, resolved overload) for every definition's expressions")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return err
	}
	enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	explain, err := cmd.Flags().GetBool("explain")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	db, err := newDatabase(enableDiskCache)
	if err != nil {
		return err
	}

	var paths []string
	if st.IsDir() {
		cfg := config.Default()
		if manifest, ok, merr := config.Load(target); merr == nil && ok {
			cfg = manifest.Config
		}
		paths, err = config.Discover(target, cfg)
		if err != nil {
			return fmt.Errorf("discovering source files: %w", err)
		}
	} else {
		paths = []string{target}
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "wgsla: no source files found")
		return nil
	}

	if _, err := db.Prime(cmd.Context(), paths, jobs, nil); err != nil {
		return fmt.Errorf("priming: %w", err)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	useColor := colorEnabled(cmd, os.Stdout)
	prettyOpts := diagfmt.PrettyOpts{Color: useColor, Context: 2, PathMode: pathMode, ShowNotes: withNotes}
	jsonOpts := diagfmt.JSONOpts{PathMode: pathMode}

	hasErrors := false
	shown := 0
	jsonOut := make(map[string][]diagfmt.DiagnosticJSON, len(paths))

	for _, p := range paths {
		fileID, ok := db.Files.Lookup(p)
		if !ok {
			continue
		}
		bag, err := db.Diagnostics(cmd.Context(), fileID)
		if err != nil {
			return fmt.Errorf("diagnosing %s: %w", p, err)
		}
		if bag.HasErrors() {
			hasErrors = true
		}
		if shown >= maxDiagnostics {
			continue
		}
		switch format {
		case "pretty":
			if len(paths) > 1 {
				fmt.Fprintf(os.Stdout, "== %s ==\n", p)
			}
			diagfmt.Pretty(os.Stdout, bag, db.Files, prettyOpts)
		case "json":
			jsonOut[p] = diagfmt.ToJSON(bag, db.Files, jsonOpts)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
		shown += bag.Len()

		if explain {
			if err := explainFile(cmd, db, fileID, p); err != nil {
				return err
			}
		}
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonOut); err != nil {
			return err
		}
	}

	if hasErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// explainFile prints diagfmt.Explain's per-expression listing for every
// definition in path's item tree, one "-- name --" header per function
// or initialized global.
func explainFile(cmd *cobra.Command, db *query.Database, fileID source.FileID, path string) error {
	items, err := db.ItemTree(cmd.Context(), fileID)
	if err != nil {
		return fmt.Errorf("explaining %s: %w", path, err)
	}
	for i := 1; i < len(items.Items); i++ {
		it := items.Items[i]
		_, body, err := db.Body(cmd.Context(), it.ID)
		if err != nil {
			return fmt.Errorf("explaining %s: %w", path, err)
		}
		if body == nil {
			continue
		}
		result, err := db.Infer(cmd.Context(), it.ID)
		if err != nil {
			return fmt.Errorf("explaining %s: %w", path, err)
		}
		fmt.Fprintf(os.Stdout, "-- %s --\n", db.Strs.Lookup(it.Name))
		diagfmt.Explain(os.Stdout, db.Files, db.Strs, db.Types, items, body, result)
	}
	return nil
}
