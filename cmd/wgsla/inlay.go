package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wgsla/internal/config"
	"wgsla/internal/ide"
	"wgsla/internal/source"
)

var inlayCmd = &cobra.Command{
	Use:   "inlay <file.wgsl>",
	Short: "List inlay type hints for a source file",
	Long:  `inlay implements the inlay-hint surface over the whole file: one hint per binding whose type was not written out explicitly`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInlay,
}

var inlayModeFlag string

func init() {
	inlayCmd.Flags().StringVar(&inlayModeFlag, "mode", "compact", "inlay hint mode (off|compact|full|inner)")
}

func runInlay(cmd *cobra.Command, args []string) error {
	path := args[0]

	var mode config.InlayMode
	switch inlayModeFlag {
	case "off":
		mode = config.InlayOff
	case "compact":
		mode = config.InlayCompact
	case "full":
		mode = config.InlayFull
	case "inner":
		mode = config.InlayInner
	default:
		return fmt.Errorf("unknown inlay mode: %s", inlayModeFlag)
	}

	db, err := newDatabase(false)
	if err != nil {
		return err
	}
	fileID, err := openFile(db, path)
	if err != nil {
		return err
	}
	f := db.Files.Get(fileID)

	hints := ide.InlayHints(cmd.Context(), db, fileID, 0, uint32(len(f.Content)), mode)
	for _, h := range hints {
		span := source.Span{File: fileID, Start: h.Offset, End: h.Offset}
		pos, _ := db.Files.Resolve(span)
		fmt.Fprintf(cmd.OutOrStdout(), "%d:%d%s\n", pos.Line, pos.Col, h.Label)
	}
	return nil
}
