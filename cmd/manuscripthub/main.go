// manuscripthub bundles two researcher-facing web apps behind one
// binary: the journal finder and the manuscript checker. The launch
// subcommand starts both; the finder and checker subcommands run one
// app in the foreground.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "manuscripthub",
	Short: "Journal finder and manuscript readiness checker",
	Long: `ManuscriptHub bundles two web apps for researchers:

  - Journal Finder: AI-assisted journal recommendations over a curated
    dataset of economics, finance, law, and business journals.
  - Manuscript Checker: pre-submission readiness checks against a
    target journal, including live submission guideline lookups.

Run "manuscripthub launch" to start both apps.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	// A bare "manuscripthub" behaves like "manuscripthub launch".
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchCmd.RunE(cmd, args)
	},
}

func main() {
	rootCmd.AddCommand(launchCmd, finderCmd, checkerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
