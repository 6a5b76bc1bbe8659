package form

import (
	"strconv"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
)

// Candidate converts form input into a trade candidate. Numbers that do not
// parse become 0, which validation rejects.
func Candidate(f Fields) journal.Candidate {
	return journal.Candidate{
		Pair:       f[FieldPair],
		OpenPrice:  number(f[FieldOpenPrice]),
		TakeProfit: number(f[FieldTakeProfit]),
		StopLoss:   number(f[FieldStopLoss]),
		Notes:      f[FieldNotes],
		Images:     []string{},
	}
}

func number(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
