package risk

import (
	"testing"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/stretchr/testify/assert"
)

func codes(d Decision) []string {
	out := []string{}
	for _, v := range d.Violations {
		out = append(out, v.Code)
	}
	return out
}

func TestEvaluateAllowed(t *testing.T) {
	t.Parallel()

	c := journal.Candidate{Pair: "SOL/USDT", OpenPrice: 150, TakeProfit: 170, StopLoss: 140}
	d := Evaluate(DefaultPolicy(), c, 0, trades(), 10000)

	assert.True(t, d.Allowed)
	assert.Empty(t, d.Violations)
	assert.Equal(t, 10.0, d.Units)
	assert.InDelta(t, 100.0, d.PlannedRisk, 1e-9)
	assert.InDelta(t, 2.0, d.PlannedRR, 1e-9)
}

func TestEvaluateViolations(t *testing.T) {
	t.Parallel()

	open := []journal.TradeRecord{
		{Nro: 1, OpenPrice: 1, TakeProfit: 2, StopLoss: 1},
		{Nro: 2, OpenPrice: 1, TakeProfit: 2, StopLoss: 1},
		{Nro: 3, OpenPrice: 1, TakeProfit: 2, StopLoss: 1},
	}
	c := journal.Candidate{Pair: "SOL/USDT", OpenPrice: 150, TakeProfit: 155, StopLoss: 140}

	d := Evaluate(DefaultPolicy(), c, 50, open, 10000)

	assert.False(t, d.Allowed)
	assert.Equal(t, []string{"RISK_TOO_HIGH", "RR_TOO_LOW", "TOO_MANY_OPEN_TRADES"}, codes(d))
	assert.InDelta(t, 0.05, d.PlannedRiskPct, 1e-9)
}

func TestEvaluateZeroPolicy(t *testing.T) {
	t.Parallel()

	c := journal.Candidate{Pair: "X", OpenPrice: 10, TakeProfit: 10, StopLoss: 10}
	d := Evaluate(Policy{}, c, 0, nil, 0)
	assert.True(t, d.Allowed)
}

func TestEvaluateDoesNotAffectValidation(t *testing.T) {
	t.Parallel()

	c := journal.Candidate{Pair: "X", OpenPrice: 10, TakeProfit: 10.1, StopLoss: 9}
	d := Evaluate(DefaultPolicy(), c, 0, nil, 1000)
	assert.False(t, d.Allowed)
	assert.NoError(t, journal.Validate(c))
}
