package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wgsla/internal/config"
	"wgsla/internal/ide"
)

var hoverCmd = &cobra.Command{
	Use:   "hover <file.wgsl> <line:col>",
	Short: "Show hover information at a source position",
	Long:  `hover implements the hover surface: the inferred type or declaration signature at a 1-based line:col position`,
	Args:  cobra.ExactArgs(2),
	RunE:  runHover,
}

var hoverDocFormat string

func init() {
	hoverCmd.Flags().StringVar(&hoverDocFormat, "doc-format", "markdown", "hover text format (plain|markdown)")
}

func runHover(cmd *cobra.Command, args []string) error {
	path, posArg := args[0], args[1]

	var format config.HoverDocFormat
	switch hoverDocFormat {
	case "plain":
		format = config.HoverPlain
	case "markdown":
		format = config.HoverMarkdown
	default:
		return fmt.Errorf("unknown doc-format: %s", hoverDocFormat)
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

	hover, ok := ide.Hover(cmd.Context(), db, fileID, offset, format)
	if !ok {
		return fmt.Errorf("no hover information at %s", posArg)
	}
	fmt.Fprintln(cmd.OutOrStdout(), hover.Text)
	return nil
}
