// Command wordgen builds personal-info password candidate lists from the
// command line and manages API operators.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wordgen:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:   "wordgen",
		Short: "Generate password candidate lists from personal information",
		Long: `wordgen expands a person's names, birthdate and keywords into a
deduplicated list of password candidates, shortest first, for authorized
password audits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level for the summary written to stderr")

	root.AddCommand(
		newGenerateCmd(&logLevel),
		newStrengthCmd(),
		newOperatorCmd(),
	)
	return root
}
