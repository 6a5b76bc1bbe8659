// Package stats reduces a trade collection into aggregate performance figures.
//
// Profit is not observed: trades carry only entry, target and stop prices.
// Callers choose how a closed trade's profit is estimated through a ProfitFunc;
// the default assumes the target was reached.
package stats

import (
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
	"gonum.org/v1/gonum/stat"
)

// ProfitFunc estimates the realized profit of a closed trade. It must be deterministic.
type ProfitFunc func(journal.TradeRecord) float64

// TargetProfit assumes the take profit was hit.
func TargetProfit(t journal.TradeRecord) float64 {
	return t.TakeProfit - t.OpenPrice
}

// StopProfit assumes the stop loss was hit.
func StopProfit(t journal.TradeRecord) float64 {
	return t.StopLoss - t.OpenPrice
}

// Month is one calendar month of activity. Month is formatted YYYY-MM.
type Month struct {
	Month  string  `json:"month"`
	Trades int     `json:"trades"`
	Profit float64 `json:"profit"`
}

type Stats struct {
	TotalTrades   int                  `json:"totalTrades"`
	ClosedTrades  int                  `json:"closedTrades"`
	OpenTrades    int                  `json:"openTrades"`
	WinningTrades int                  `json:"winningTrades"`
	LosingTrades  int                  `json:"losingTrades"`
	WinRate       float64              `json:"winRate"`
	TotalProfit   float64              `json:"totalProfit"`
	AverageProfit float64              `json:"averageProfit"`
	ProfitStdDev  float64              `json:"profitStdDev"`
	BestTrade     *journal.TradeRecord `json:"bestTrade"`
	WorstTrade    *journal.TradeRecord `json:"worstTrade"`
	TradesByPair  map[string]int       `json:"tradesByPair"`
	MonthlyStats  []Month              `json:"monthlyStats"`
}

// Engine computes Stats with a given profit model.
type Engine struct {
	Profit ProfitFunc
}

// Compute uses TargetProfit.
func Compute(trades []journal.TradeRecord) Stats {
	return Engine{Profit: TargetProfit}.Compute(trades)
}

func (e Engine) Compute(trades []journal.TradeRecord) Stats {
	profit := e.Profit
	if profit == nil {
		profit = TargetProfit
	}

	s := Stats{
		TotalTrades:  len(trades),
		TradesByPair: make(map[string]int),
		MonthlyStats: []Month{},
	}

	var (
		profits       []float64
		best, worst   int = -1, -1
		bestP, worstP float64
	)
	months := make(map[string]*Month)

	for i, t := range trades {
		s.TradesByPair[t.Pair]++

		key := monthKey(t)
		m, ok := months[key]
		if !ok {
			m = &Month{Month: key}
			months[key] = m
		}
		m.Trades++

		if t.IsOpen() {
			s.OpenTrades++
			continue
		}

		p := profit(t)
		s.ClosedTrades++
		s.TotalProfit += p
		m.Profit += p
		profits = append(profits, p)

		switch {
		case p > 0:
			s.WinningTrades++
		case p < 0:
			s.LosingTrades++
		}

		// Strict comparisons keep the first occurrence on ties.
		if best < 0 || p > bestP {
			best, bestP = i, p
		}
		if worst < 0 || p < worstP {
			worst, worstP = i, p
		}
	}

	if s.ClosedTrades > 0 {
		s.WinRate = 100 * float64(s.WinningTrades) / float64(s.ClosedTrades)
		s.AverageProfit = s.TotalProfit / float64(s.ClosedTrades)
	}
	if len(profits) > 1 {
		s.ProfitStdDev = stat.StdDev(profits, nil)
	}
	if best >= 0 {
		s.BestTrade = copyTrade(trades[best])
		s.WorstTrade = copyTrade(trades[worst])
	}

	for _, m := range months {
		s.MonthlyStats = append(s.MonthlyStats, *m)
	}
	sort.Slice(s.MonthlyStats, func(i, j int) bool {
		return s.MonthlyStats[i].Month < s.MonthlyStats[j].Month
	})

	return s
}

func copyTrade(t journal.TradeRecord) *journal.TradeRecord {
	c := t
	c.Images = append([]string{}, t.Images...)
	return &c
}

// monthKey is the YYYY-MM of OpenedAt. Values that do not parse fall back to
// their leading "YYYY-MM" text, or "unknown".
func monthKey(t journal.TradeRecord) string {
	if ts, err := t.OpenTime(); err == nil {
		return ts.Format("2006-01")
	}
	s := t.OpenedAt
	if len(s) >= 7 && s[4] == '-' {
		return s[:7]
	}
	return "unknown"
}
