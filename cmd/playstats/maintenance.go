package main

import (
	"fmt"

	"github.com/aevon-lab/playstats/internal/core/period"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <YYYY-MM> <track_key>",
		Short: "Remove one track's counter from a month",
		Long:  "delete removes the counter row only. The journal keeps the plays, so recompute brings the counter back.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = manager.Close()
			}()

			if err := manager.DeleteCounter(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s from %s\n", args[1], args[0])
			return nil
		},
	}
}

func newRecomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute <YYYY-MM|YYYY>",
		Short: "Rebuild counters of a month or year from the journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := period.Parse(args[0])
			if err != nil {
				return err
			}

			manager, err := openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = manager.Close()
			}()

			n, err := manager.RecomputePeriod(cmd.Context(), p.String(), p.IsYear())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recomputed %s: %d counters\n", p, n)
			return nil
		},
	}
}
