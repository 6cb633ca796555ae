package main

import (
	"fmt"
	"time"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/aevon-lab/playstats/internal/producer"
	"github.com/spf13/cobra"
)

func newRecordCmd() *cobra.Command {
	var (
		playedAt string
		listened time.Duration
	)

	cmd := &cobra.Command{
		Use:   "record <file>...",
		Short: "Record a play of each audio file",
		Long:  "record reads each file's tags and appends one play per file to the journal. Whether a play qualifies is up to the caller.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var at time.Time
			if playedAt != "" {
				t, err := time.Parse(time.RFC3339, playedAt)
				if err != nil {
					return fmt.Errorf("invalid --at %q: %w", playedAt, err)
				}
				at = t
			}

			// Build every event before opening the store so a bad path records nothing.
			events := make([]v1.PlayEvent, 0, len(args))
			for _, path := range args {
				evt, err := producer.EventFromFile(path, at, listened)
				if err != nil {
					return err
				}
				events = append(events, evt)
			}

			manager, err := openManager(cmd.Context())
			if err != nil {
				return err
			}

			for _, evt := range events {
				if !manager.PostEvent(evt) {
					_ = manager.Close()
					return fmt.Errorf("play store closed while recording %s", evt.Path)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "recorded %s (%s)\n", evt.Title, evt.TrackKey)
			}

			// Close drains the queue, so every play above is on disk when it returns.
			return manager.Close()
		},
	}

	cmd.Flags().StringVar(&playedAt, "at", "", "Play time as RFC3339 (default: now)")
	cmd.Flags().DurationVar(&listened, "listened", 0, "Listening time to attribute to each play, e.g. 3m30s")

	return cmd
}
