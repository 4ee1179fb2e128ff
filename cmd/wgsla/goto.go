package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wgsla/internal/ide"
)

var gotoCmd = &cobra.Command{
	Use:   "goto <file.wgsl> <line:col>",
	Short: "Resolve the definition site of the symbol at a source position",
	Long:  `goto implements the resolve_at(file_id, offset): the definition location of the name under the cursor`,
	Args:  cobra.ExactArgs(2),
	RunE:  runGoto,
}

func runGoto(cmd *cobra.Command, args []string) error {
	path, posArg := args[0], args[1]

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

	loc, ok := ide.ResolveAt(cmd.Context(), db, fileID, offset)
	if !ok {
		return fmt.Errorf("no definition found at %s", posArg)
	}
	start, _ := db.Files.Resolve(loc.Span)
	targetPath := db.Files.Get(loc.File).Path
	fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d\n", targetPath, start.Line, start.Col)
	return nil
}
