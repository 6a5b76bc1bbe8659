package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "List trades opened on a day (default today)",
	Long: `Print the trades opened on one local calendar day as org-mode entries.

Examples:
  tradejournal day
  tradejournal day 2024-07-15`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDay,
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

type openedBetweenLister interface {
	ListOpenedBetween(ctx context.Context, start, end time.Time) ([]journal.TradeRecord, error)
}

func runDay(cmd *cobra.Command, args []string) error {
	loc := time.Local
	day := time.Now().In(loc).Format("2006-01-02")
	if len(args) == 1 {
		day = args[0]
	}
	start, end, err := journal.DayBounds(loc, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var recs []journal.TradeRecord
	if l, ok := store.(openedBetweenLister); ok {
		recs, err = l.ListOpenedBetween(ctx(cmd), start, end)
	} else {
		recs, err = openedBetween(ctx(cmd), store, start, end)
	}
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}

func openedBetween(ctx context.Context, store journal.Store, start, end time.Time) ([]journal.TradeRecord, error) {
	all, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []journal.TradeRecord
	for _, t := range all {
		ts, err := t.OpenTime()
		if err == nil && !ts.Before(start) && ts.Before(end) {
			out = append(out, t)
		}
	}
	return out, nil
}
