package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func (a *app) newSimulateCmd() *cobra.Command {
	var games, parallel int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play computer against computer and print statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed := a.newSeed()
			a.logger.Debug("simulating", "games", games, "seed", seed, "parallel", parallel)

			summary, err := a.newJudge().Series(cmd.Context(), games, seed, parallel)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "games:       %d\n", summary.Games)
			fmt.Fprintf(out, "first wins:  %d\n", summary.FirstWins)
			fmt.Fprintf(out, "second wins: %d\n", summary.SecondWins)
			fmt.Fprintf(out, "ties:        %d\n", summary.Ties)
			fmt.Fprintf(out, "avg turns:   %.1f\n", summary.AvgTurns)
			return nil
		},
	}

	cmd.Flags().IntVar(&games, "games", 100, "amount of matches")
	cmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "matches played at once")

	return cmd
}
