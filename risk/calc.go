// Package risk derives capital and per-trade risk limits from a journal.
package risk

import (
	"math"

	"github.com/rustyeddy/tradejournal/journal"
)

// MaxRiskFraction is the share of capital a single trade may put at risk.
const MaxRiskFraction = 0.01

// BlendedProfit estimates a closed trade's outcome as an even split between
// hitting the target and hitting the stop.
func BlendedProfit(t journal.TradeRecord) float64 {
	return 0.5*(t.TakeProfit-t.OpenPrice) + 0.5*(t.StopLoss-t.OpenPrice)
}

// CurrentCapital adds the blended profit of every closed trade to initial.
// initial is not validated; zero or negative values pass through.
func CurrentCapital(trades []journal.TradeRecord, initial float64) float64 {
	total := 0.0
	for _, t := range trades {
		if t.IsClosed() {
			total += BlendedProfit(t)
		}
	}
	return initial + total
}

func MaxRiskPerTrade(capital float64) float64 {
	return capital * MaxRiskFraction
}

// Summary is the risk panel for a journal.
type Summary struct {
	InitialCapital float64 `json:"initialCapital"`
	CurrentCapital float64 `json:"currentCapital"`
	MaxRisk        float64 `json:"maxRisk"`
	TotalTrades    int     `json:"totalTrades"`
	ClosedTrades   int     `json:"closedTrades"`
	OpenTrades     int     `json:"openTrades"`
}

func Summarize(trades []journal.TradeRecord, initial float64) Summary {
	s := Summary{
		InitialCapital: initial,
		CurrentCapital: CurrentCapital(trades, initial),
		TotalTrades:    len(trades),
	}
	s.MaxRisk = MaxRiskPerTrade(s.CurrentCapital)
	for _, t := range trades {
		if t.IsClosed() {
			s.ClosedTrades++
		} else {
			s.OpenTrades++
		}
	}
	return s
}

// RR is reward over risk for a planned trade. A zero-distance stop yields 0.
func RR(entry, stop, takeProfit float64) float64 {
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0
	}
	return math.Abs(takeProfit-entry) / risk
}

// RiskPct is the fraction of equity lost if the stop is hit.
func RiskPct(risk, equity float64) float64 {
	if equity <= 0 {
		return math.Inf(1)
	}
	return risk / equity
}
