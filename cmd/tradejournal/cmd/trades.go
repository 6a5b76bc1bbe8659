package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/filter"
	"github.com/rustyeddy/tradejournal/form"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/notify"
	"github.com/rustyeddy/tradejournal/risk"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new open trade",
	Long: `Validate and record a new trade. The trade number and open time are
assigned by the journal.

Example:
  tradejournal add --pair BTC/USDT --open 65000 --tp 67000 --sl 64000`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades, optionally filtered",
	Long: `List trades in number order.

Examples:
  tradejournal list --status open
  tradejournal list --pair ETH/USDT --from 2024-07-01 --to 2024-07-31
  tradejournal list --price-from 1000 --org`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show <nro>",
	Short: "Show a trade as an org-mode entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var closeCmd = &cobra.Command{
	Use:   "close <nro>",
	Short: "Close an open trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runClose,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <nro>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var (
	addFields form.Fields
	addCheck  bool

	listFilters *filterFlags
	listOrg     bool

	closeReason string
	closeAt     string
)

func init() {
	rootCmd.AddCommand(addCmd, listCmd, showCmd, closeCmd, deleteCmd)

	addFields = form.InitialFields()
	bind := func(key, name, usage string) {
		addCmd.Flags().Func(name, usage, func(v string) error {
			addFields[key] = v
			return nil
		})
	}
	bind(form.FieldPair, "pair", "instrument, e.g. BTC/USDT")
	bind(form.FieldOpenPrice, "open", "open price")
	bind(form.FieldTakeProfit, "tp", "take profit price")
	bind(form.FieldStopLoss, "sl", "stop loss price")
	bind(form.FieldNotes, "notes", "trade thesis")
	addCmd.Flags().BoolVar(&addCheck, "check", true, "print advisory risk warnings")

	listFilters = addFilterFlags(listCmd)
	listCmd.Flags().BoolVar(&listOrg, "org", false, "print org-mode entries instead of a table")

	closeCmd.Flags().StringVarP(&closeReason, "reason", "r", "", "why the trade was closed")
	closeCmd.Flags().StringVar(&closeAt, "at", "", "close time (default now)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	// Take the parsed values and leave fresh storage for the next Execute.
	fields := addFields
	addFields = form.InitialFields()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	m := form.NewMachine(store,
		notify.Multi{notify.NewWriter(out), notify.Log{Logger: log}},
		form.WithCloseDelay(0),
		form.WithLogger(log),
	)
	m.Dispatch(form.OpenModal{}, form.UpdateForm{Patch: fields})

	if addCheck {
		trades, err := store.List(ctx(cmd))
		if err != nil {
			return fmt.Errorf("list trades: %w", err)
		}
		c := form.Candidate(m.State().Fields)
		if journal.Validate(c) == nil {
			d := risk.Evaluate(cfg.Risk.Policy(), c, 0, trades, cfg.Risk.InitialCapital)
			for _, v := range d.Violations {
				fmt.Fprintf(out, "! %s: %s\n", v.Code, v.Msg)
			}
		}
	}

	if _, err := m.Submit(ctx(cmd)); err != nil {
		return err
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	opts, err := listFilters.options(cmd)
	if err != nil {
		return err
	}
	trades, err := loadTrades(cmd, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listOrg {
		fmt.Fprintln(out, journal.FormatTradesOrg(trades))
		return nil
	}
	return writeTable(out, trades)
}

func runShow(cmd *cobra.Command, args []string) error {
	nro, err := parseNro(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(ctx(cmd), nro)
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runClose(cmd *cobra.Command, args []string) error {
	nro, err := parseNro(args[0])
	if err != nil {
		return err
	}
	at := time.Now()
	if closeAt != "" {
		at, err = journal.ParseTime(closeAt)
		if err != nil {
			return fmt.Errorf("close time: %w", err)
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Update(ctx(cmd), nro, journal.ClosePatch(at, closeReason))
	if err != nil {
		return fmt.Errorf("close trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Closed trade #%d %s at %s\n", rec.Nro, rec.Pair, rec.ClosedAt)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	nro, err := parseNro(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(ctx(cmd), nro); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade #%d\n", nro)
	return nil
}

func loadTrades(cmd *cobra.Command, opts filter.Options) ([]journal.TradeRecord, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	trades, err := store.List(ctx(cmd))
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return filter.Apply(trades, opts), nil
}

func writeTable(out io.Writer, trades []journal.TradeRecord) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NRO\tPAIR\tOPEN\tTP\tSL\tOPENED\tCLOSED\tREASON")
	for _, t := range trades {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Nro, t.Pair,
			num(t.OpenPrice), num(t.TakeProfit), num(t.StopLoss),
			t.OpenedAt, dash(t.ClosedAt), dash(t.CloseReason))
	}
	return tw.Flush()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func parseNro(s string) (int, error) {
	nro, err := strconv.Atoi(s)
	if err != nil || nro <= 0 {
		return 0, fmt.Errorf("invalid trade number %q", s)
	}
	return nro, nil
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
