package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/5w1tchy/wordlist-api/internal/generator"
)

func newStrengthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strength <password>...",
		Short: "Score passwords with the coarse strength heuristic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCORE\tLABEL\tPASSWORD")
			for _, pw := range args {
				r := generator.Rate(pw)
				fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Score, r.Label, pw)
			}
			return tw.Flush()
		},
	}
}
