package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"wgsla/internal/config"
	"wgsla/internal/query"
	"wgsla/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <directory>",
	Short: "Prime a directory's diagnostics with a live progress view",
	Long:  `tui runs the same directory priming as check, rendering a spinner and per-stage progress bar while item trees resolve and bodies infer`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().Int("jobs", 0, "max parallel workers for priming (0=auto)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	target := args[0]
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	db, err := newDatabase(false)
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

	results, err := primeWithUI(cmd.Context(), db, "priming", paths, jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
		}
	}
	if failed > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// primeWithUI runs Database.Prime on a goroutine, piping its progress
// events through a channel into a bubbletea program on the foreground:
// the worker goroutine produces events, the TUI program consumes them.
func primeWithUI(ctx context.Context, db *query.Database, title string, paths []string, jobs int) ([]query.PrimeResult, error) {
	events := make(chan query.Event, 256)
	type outcome struct {
		results []query.PrimeResult
		err     error
	}
	outcomeCh := make(chan outcome, 1)

	go func() {
		results, err := db.Prime(ctx, paths, jobs, query.ChannelSink{Ch: events})
		outcomeCh <- outcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.results, uiErr
	}
	return out.results, out.err
}
