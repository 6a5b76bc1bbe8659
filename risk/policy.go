package risk

import (
	"fmt"

	"github.com/rustyeddy/tradejournal/journal"
)

// Policy holds advisory pre-trade limits. A zero limit is not enforced.
type Policy struct {
	MaxRiskPct    float64 `yaml:"max_risk_pct" json:"max_risk_pct"`
	MinRR         float64 `yaml:"min_rr" json:"min_rr"`
	MaxOpenTrades int     `yaml:"max_open_trades" json:"max_open_trades"`
}

// DefaultPolicy mirrors the one percent rule.
func DefaultPolicy() Policy {
	return Policy{
		MaxRiskPct:    MaxRiskFraction,
		MinRR:         1.5,
		MaxOpenTrades: 3,
	}
}

type Violation struct {
	Code string `json:"code"`
	Msg  string `json:"message"`
}

type Decision struct {
	Allowed    bool        `json:"allowed"`
	Violations []Violation `json:"violations"`

	Units          float64 `json:"units"`
	PlannedRisk    float64 `json:"plannedRisk"`
	PlannedRiskPct float64 `json:"plannedRiskPct"`
	PlannedRR      float64 `json:"plannedRR"`
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Evaluate checks a candidate against p using the journal's current capital.
// units of zero sizes the position with PositionUnits. The result is advisory
// and never affects journal validation.
func Evaluate(p Policy, c journal.Candidate, units float64, trades []journal.TradeRecord, initial float64) Decision {
	d := Decision{Allowed: true, Violations: []Violation{}}

	capital := CurrentCapital(trades, initial)
	if units == 0 {
		units = PositionUnits(MaxRiskPerTrade(capital), c.OpenPrice, c.StopLoss)
	}
	d.Units = units
	d.PlannedRisk = PlannedRisk(units, c.OpenPrice, c.StopLoss)
	d.PlannedRiskPct = RiskPct(d.PlannedRisk, capital)
	d.PlannedRR = RR(c.OpenPrice, c.StopLoss, c.TakeProfit)

	if p.MaxRiskPct > 0 && d.PlannedRiskPct > p.MaxRiskPct {
		d.add("RISK_TOO_HIGH",
			fmt.Sprintf("planned risk %.2f%% exceeds max %.2f%%",
				100*d.PlannedRiskPct, 100*p.MaxRiskPct))
	}
	if p.MinRR > 0 && d.PlannedRR < p.MinRR {
		d.add("RR_TOO_LOW",
			fmt.Sprintf("RR %.2f below minimum %.2f", d.PlannedRR, p.MinRR))
	}

	open := 0
	for _, t := range trades {
		if t.IsOpen() {
			open++
		}
	}
	if p.MaxOpenTrades > 0 && open >= p.MaxOpenTrades {
		d.add("TOO_MANY_OPEN_TRADES",
			fmt.Sprintf("open trades %d >= max %d", open, p.MaxOpenTrades))
	}

	return d
}
