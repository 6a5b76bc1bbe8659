package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
)

// Pairs lists the distinct instruments, sorted.
func Pairs(trades []journal.TradeRecord) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range trades {
		if !seen[t.Pair] {
			seen[t.Pair] = true
			out = append(out, t.Pair)
		}
	}
	sort.Strings(out)
	return out
}

// Recent returns up to limit trades, newest OpenedAt first. Trades whose
// OpenedAt does not parse sort last. The input is left untouched.
func Recent(trades []journal.TradeRecord, limit int) []journal.TradeRecord {
	type keyed struct {
		t    journal.TradeRecord
		unix int64
		ok   bool
	}
	ks := make([]keyed, len(trades))
	for i, t := range trades {
		ts, err := t.OpenTime()
		ks[i] = keyed{t: t, unix: ts.Unix(), ok: err == nil}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].ok != ks[j].ok {
			return ks[i].ok
		}
		return ks[i].unix > ks[j].unix
	})

	if limit < 0 || limit > len(ks) {
		limit = len(ks)
	}
	out := make([]journal.TradeRecord, 0, limit)
	for _, k := range ks[:limit] {
		out = append(out, k.t)
	}
	return out
}

// FormatCurrency renders v as US dollars with thousands separators, e.g. -$1,234.50.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "0.00" {
		sign = ""
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s$%s.%s", sign, b.String(), frac)
}

// FormatPercentage renders a 0..100 value with one decimal, e.g. 62.5%.
func FormatPercentage(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
