package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"minifyall/internal/core"
	"minifyall/internal/sizes"
	"minifyall/internal/state"
)

var (
	clearHistory bool
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history [file]",
	Short: "Show previously minified files and their savings",
	Long: `history lists recorded minifications, newest last. Given a file, only its
most recent minification is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := core.NewFileHistoryStore(expandTilde(settings.History.Path))
		if clearHistory {
			return store.Clear()
		}
		h, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(args) == 1 {
			path, _ := filepath.Abs(args[0])
			e, ok := h.LastFor(path)
			if !ok {
				e, ok = h.LastFor(args[0])
			}
			if !ok {
				return fmt.Errorf("%s has not been minified", args[0])
			}
			h = state.History{e}
		}
		if len(h) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No files minified yet.")
			return nil
		}
		if historyLimit > 0 && len(h) > historyLimit {
			h = h[len(h)-historyLimit:]
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderHistory(h))
		return nil
	},
}

func renderHistory(h state.History) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("When", "File", "Output", "Original", "Minified", "Gzip", "Brotli")

	for _, e := range h {
		out := e.OutputPath
		if out == "" {
			out = "(stdout)"
		}
		t.Row(
			e.MinifiedAt.Local().Format("2006-01-02 15:04"),
			e.Path,
			out,
			sizes.Human(e.OriginalBytes),
			sizes.Human(e.MinifiedBytes),
			sizes.Human(e.GzipBytes),
			sizes.Human(e.BrotliBytes),
		)
	}
	return fmt.Sprintf("%s\nTotal saved: %s", t.Render(), sizes.Human(h.TotalSaved()))
}

func init() {
	historyCmd.Flags().BoolVar(&clearHistory, "clear", false, "delete the recorded history")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "show at most this many recent entries (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
