package main

import (
	"fmt"

	"github.com/aevon-lab/playstats/internal/core/period"
	"github.com/aevon-lab/playstats/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export <YYYY-MM|YYYY>",
		Short: "Write a month or year report as JSON or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := period.Parse(args[0])
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("playstats-%s.json", p)
				if format != "" {
					out = fmt.Sprintf("playstats-%s.%s", p, format)
				}
			}
			f := export.FormatFromPath(out)
			if format != "" {
				if f, err = export.ParseFormat(format); err != nil {
					return err
				}
			}

			resp, err := queryPeriod(cmd, p)
			if err != nil {
				return err
			}
			if err := export.WriteFile(out, resp, f); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entries to %s\n", len(resp.Entries), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: playstats-<period>.<format>)")
	cmd.Flags().StringVar(&format, "format", "", "json or csv (default: from the output file extension)")

	return cmd
}
