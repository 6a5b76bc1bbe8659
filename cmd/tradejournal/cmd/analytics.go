package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/filter"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/rustyeddy/tradejournal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance statistics",
	Long: `Summarize the journal: counts, win rate, profit, best and worst trade,
trades per pair and per month. Profit for closed trades assumes the
take profit was hit unless --assume stop is given.

Examples:
  tradejournal stats
  tradejournal stats --pair BTC/USDT --from 2024-01-01`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Show capital and the maximum risk per trade",
	Long: `Compute current capital from the initial capital and closed trades, and
the one percent maximum risk for the next trade. With --pair, --open,
--tp and --sl the planned trade is checked against the risk policy.

Examples:
  tradejournal risk --capital 25000
  tradejournal risk --pair SOL/USDT --open 150 --tp 170 --sl 140`,
	Args: cobra.NoArgs,
	RunE: runRisk,
}

var (
	statsFilters *filterFlags
	statsAssume  string
	statsJSON    bool

	riskCapital float64
	riskCheck   journal.Candidate
	riskUnits   float64
)

func init() {
	rootCmd.AddCommand(statsCmd, riskCmd)

	statsFilters = addFilterFlags(statsCmd)
	statsCmd.Flags().StringVar(&statsAssume, "assume", "target", "profit model for closed trades: target or stop")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON")

	riskCmd.Flags().Float64Var(&riskCapital, "capital", 0, "initial capital (default from config)")
	riskCmd.Flags().StringVar(&riskCheck.Pair, "pair", "", "planned trade pair")
	riskCmd.Flags().Float64Var(&riskCheck.OpenPrice, "open", 0, "planned open price")
	riskCmd.Flags().Float64Var(&riskCheck.TakeProfit, "tp", 0, "planned take profit")
	riskCmd.Flags().Float64Var(&riskCheck.StopLoss, "sl", 0, "planned stop loss")
	riskCmd.Flags().Float64Var(&riskUnits, "units", 0, "planned units (default sized to max risk)")
}

func runStats(cmd *cobra.Command, args []string) error {
	opts, err := statsFilters.options(cmd)
	if err != nil {
		return err
	}

	var e stats.Engine
	switch statsAssume {
	case "target":
		e.Profit = stats.TargetProfit
	case "stop":
		e.Profit = stats.StopProfit
	default:
		return fmt.Errorf("unknown profit model %q", statsAssume)
	}

	trades, err := loadTrades(cmd, opts)
	if err != nil {
		return err
	}
	s := e.Compute(trades)

	out := cmd.OutOrStdout()
	if statsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	fmt.Fprintf(out, "Trades:        %d (%d closed, %d open)\n", s.TotalTrades, s.ClosedTrades, s.OpenTrades)
	fmt.Fprintf(out, "Win rate:      %s\n", stats.FormatPercentage(s.WinRate))
	fmt.Fprintf(out, "Total profit:  %s\n", stats.FormatCurrency(s.TotalProfit))
	fmt.Fprintf(out, "Average:       %s\n", stats.FormatCurrency(s.AverageProfit))
	fmt.Fprintf(out, "Std deviation: %s\n", stats.FormatCurrency(s.ProfitStdDev))
	if s.BestTrade != nil {
		fmt.Fprintf(out, "Best trade:    #%d %s\n", s.BestTrade.Nro, s.BestTrade.Pair)
		fmt.Fprintf(out, "Worst trade:   #%d %s\n", s.WorstTrade.Nro, s.WorstTrade.Pair)
	}

	fmt.Fprintln(out, "\nBy pair:")
	for _, p := range stats.Pairs(trades) {
		fmt.Fprintf(out, "  %-12s %d\n", p, s.TradesByPair[p])
	}
	fmt.Fprintln(out, "\nBy month:")
	for _, m := range s.MonthlyStats {
		fmt.Fprintf(out, "  %s  %3d  %s\n", m.Month, m.Trades, stats.FormatCurrency(m.Profit))
	}
	return nil
}

func runRisk(cmd *cobra.Command, args []string) error {
	capital := cfg.Risk.InitialCapital
	if cmd.Flags().Changed("capital") {
		capital = riskCapital
	}

	trades, err := loadTrades(cmd, filter.Options{})
	if err != nil {
		return err
	}
	s := risk.Summarize(trades, capital)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initial capital:     %s\n", stats.FormatCurrency(s.InitialCapital))
	fmt.Fprintf(out, "Current capital:     %s\n", stats.FormatCurrency(s.CurrentCapital))
	fmt.Fprintf(out, "Max risk per trade:  %s (%s)\n",
		stats.FormatCurrency(s.MaxRisk), stats.FormatPercentage(100*risk.MaxRiskFraction))
	fmt.Fprintf(out, "Trades:              %d (%d closed, %d open)\n", s.TotalTrades, s.ClosedTrades, s.OpenTrades)

	if riskCheck.Pair == "" {
		return nil
	}
	if err := journal.Validate(riskCheck); err != nil {
		return err
	}

	d := risk.Evaluate(cfg.Risk.Policy(), riskCheck, riskUnits, trades, capital)
	fmt.Fprintf(out, "\nPlanned %s: %s units, risk %s (%s), RR %.2f\n",
		riskCheck.Pair, num(d.Units),
		stats.FormatCurrency(d.PlannedRisk), stats.FormatPercentage(100*d.PlannedRiskPct), d.PlannedRR)
	if d.Allowed {
		fmt.Fprintln(out, "✓ Within policy")
		return nil
	}
	for _, v := range d.Violations {
		fmt.Fprintf(out, "✗ %s: %s\n", v.Code, v.Msg)
	}
	return nil
}
