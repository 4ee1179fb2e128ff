package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wgsla/internal/diagfmt"
	"wgsla/internal/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] <file.wgsl>",
	Short: "Tokenize a WGSL source file",
	Long:  `tokens runs the lexer alone, printing every classified token (including trivia-carrying ones) with its source span`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	path := args[0]
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
	f := db.Files.Get(fileID)

	toks, bag := lexer.Tokenize(fileID, f.Content)
	if bag.Len() > 0 {
		useColor := colorEnabled(cmd, os.Stderr)
		diagfmt.Pretty(os.Stderr, bag, db.Files, diagfmt.PrettyOpts{Color: useColor, Context: 2})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, toks, db.Files)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
