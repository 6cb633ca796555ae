package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/aevon-lab/playstats/internal/core/period"
	"github.com/aevon-lab/playstats/internal/projection"
	"github.com/aevon-lab/playstats/internal/stats"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sixty = decimal.NewFromInt(60)

type queryFlags struct {
	sort   string
	order  string
	format string
	limit  int
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort column: plays, title, artist, album or delta")
	cmd.Flags().StringVar(&f.order, "order", "", "Sort order: asc or desc (default depends on column)")
	cmd.Flags().StringVar(&f.format, "format", "table", "Output format: table or json")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Show at most this many rows (0 = all)")
}

func newMonthCmd() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show play counts for a month (default: current month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := stats.CurrentMonth()
			if len(args) == 1 {
				arg = args[0]
			}
			p, err := period.ParseMonth(arg)
			if err != nil {
				return err
			}
			return runQuery(cmd, p, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func newYearCmd() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "year [YYYY]",
		Short: "Show play counts for a year (default: current year)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := stats.CurrentYear()
			if len(args) == 1 {
				arg = args[0]
			}
			p, err := period.ParseYear(arg)
			if err != nil {
				return err
			}
			return runQuery(cmd, p, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runQuery(cmd *cobra.Command, p period.Period, flags queryFlags) error {
	col, err := projection.ParseSortColumn(flags.sort)
	if err != nil {
		return err
	}
	ascending, err := projection.ParseOrder(col, flags.order)
	if err != nil {
		return err
	}

	resp, err := queryPeriod(cmd, p)
	if err != nil {
		return err
	}
	if flags.sort != "" || flags.order != "" {
		projection.SortEntries(resp.Entries, col, ascending)
	}
	if flags.limit > 0 && len(resp.Entries) > flags.limit {
		resp.Entries = resp.Entries[:flags.limit]
	}

	switch flags.format {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(resp)
	case "table":
		renderTable(cmd.OutOrStdout(), resp)
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid values: table, json)", flags.format)
	}
}

// queryPeriod opens the store, runs the query for p and closes the store again.
func queryPeriod(cmd *cobra.Command, p period.Period) (v1.PeriodResponse, error) {
	manager, err := openManager(cmd.Context())
	if err != nil {
		return v1.PeriodResponse{}, err
	}
	defer func() {
		_ = manager.Close()
	}()

	var entries []v1.PeriodEntry
	if p.IsYear() {
		entries, err = manager.QueryYear(cmd.Context(), p.String())
	} else {
		entries, err = manager.QueryMonth(cmd.Context(), p.String())
	}
	if err != nil {
		return v1.PeriodResponse{}, err
	}
	return projection.NewPeriodResponse(p, entries), nil
}

func renderTable(w io.Writer, resp v1.PeriodResponse) {
	if len(resp.Entries) == 0 {
		fmt.Fprintf(w, "No plays recorded for %s.\n", resp.Period)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%s (vs %s)", resp.Period, resp.Compare))

	t.AppendHeader(table.Row{"#", "Title", "Artist", "Album", "Plays", "Prev", "Delta", "Listened", "Key"})
	for i, e := range resp.Entries {
		t.AppendRow(table.Row{
			i + 1,
			e.Title,
			e.Artist,
			e.Album,
			e.Playcount,
			e.PrevPlaycount,
			formatDelta(e.Delta()),
			formatListened(e),
			e.TrackKey,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", resp.TotalPlays})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
		{Number: 3, WidthMax: 30},
		{Number: 4, WidthMax: 30},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})

	t.Render()
}

func formatDelta(d int64) string {
	if d > 0 {
		return "+" + strconv.FormatInt(d, 10)
	}
	return strconv.FormatInt(d, 10)
}

func formatListened(e v1.PeriodEntry) string {
	if e.TotalListenedSeconds.IsZero() {
		return "-"
	}
	minutes := e.TotalListenedSeconds.Div(sixty).Round(1)
	return minutes.String() + "m"
}
