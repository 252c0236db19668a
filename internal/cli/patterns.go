package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ppiankov/legalparse/internal/classify"
)

// patternsCmd represents the patterns command
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the obligation and right cue patterns",
	Long: `Print both cue pattern tables in match priority order. Patterns are
case-insensitive regular expressions and are fixed at build time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if err := printPatterns(w, "Obligation patterns", classify.ObligationPatterns()); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return printPatterns(w, "Right patterns", classify.RightPatterns())
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

func printPatterns(w io.Writer, title string, set classify.PatternSet) error {
	if _, err := fmt.Fprintf(w, "%s (%d)\n", title, len(set.Patterns)); err != nil {
		return err
	}
	for i, p := range set.Patterns {
		if _, err := fmt.Fprintf(w, "  %2d. %s\n", i+1, p); err != nil {
			return err
		}
	}
	return nil
}
