package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a trade as an Org-mode block for pasting into a journal.
// Structured facts go in the PROPERTIES drawer; the narrative headings are left empty.
func FormatTradeOrg(t TradeRecord) string {
	status := "OPEN"
	if t.IsClosed() {
		status = "CLOSED"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("** %s Trade #%d: %s\n", status, t.Nro, t.Pair))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":NRO: %d\n", t.Nro))
	if t.ID != "" {
		b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	}
	b.WriteString(fmt.Sprintf(":PAIR: %s\n", t.Pair))
	b.WriteString(fmt.Sprintf(":OPEN_PRICE: %s\n", f(t.OpenPrice)))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %s\n", f(t.TakeProfit)))
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %s\n", f(t.StopLoss)))
	b.WriteString(fmt.Sprintf(":OPENED_AT: %s\n", t.OpenedAt))
	if t.IsClosed() {
		b.WriteString(fmt.Sprintf(":CLOSED_AT: %s\n", t.ClosedAt))
		b.WriteString(fmt.Sprintf(":CLOSE_REASON: %s\n", t.CloseReason))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- ")
	b.WriteString(t.Notes)
	b.WriteString("\n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")
	for _, img := range t.Images {
		b.WriteString(fmt.Sprintf("[[%s]]\n", img))
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}
