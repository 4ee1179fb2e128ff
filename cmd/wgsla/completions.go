package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wgsla/internal/ide"
)

var completionsCmd = &cobra.Command{
	Use:   "completions <file.wgsl> <line:col>",
	Short: "List completion candidates at a source position",
	Long:  `completions implements the completion surface: item names, builtins and in-scope locals visible at a 1-based line:col position`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCompletions,
}

func init() {
	completionsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runCompletions(cmd *cobra.Command, args []string) error {
	path, posArg := args[0], args[1]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	db, err := newDatabase(false)
	if err != nil {
		return err
	}
	fileID, err := openFile(db, path)
	if err != nil {
		return err
	}
	offset, err := parsePosition(db, fileID, posArg)
	if err != nil {
		return err
	}

	items := ide.Completions(cmd.Context(), db, fileID, offset)
	switch format {
	case "pretty":
		for _, it := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", it.Label, it.Detail)
		}
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
