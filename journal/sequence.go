package journal

import (
	"strings"
	"time"
)

// NextNro returns max(nro)+1 over the snapshot, or 1 when it is empty.
//
// It holds no counter. Two creations racing on the same snapshot get the same
// number, so callers must compute it inside the same critical section that
// commits the new record.
func NextNro(existing []TradeRecord) int {
	highest := 0
	for _, t := range existing {
		if t.Nro > highest {
			highest = t.Nro
		}
	}
	return highest + 1
}

// New validates c and builds the open trade that would follow existing.
func New(existing []TradeRecord, c Candidate, now time.Time) (TradeRecord, error) {
	if err := Validate(c); err != nil {
		return TradeRecord{}, err
	}
	return TradeRecord{
		Nro:        NextNro(existing),
		Pair:       strings.TrimSpace(c.Pair),
		OpenPrice:  c.OpenPrice,
		TakeProfit: c.TakeProfit,
		StopLoss:   c.StopLoss,
		OpenedAt:   FormatTime(now),
		Notes:      c.Notes,
		Images:     cloneImages(c.Images),
	}, nil
}
