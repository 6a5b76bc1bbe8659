// journal/csv.go
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var csvHeader = []string{"nro", "pair", "open_price", "take_profit", "stop_loss", "opened_at", "closed_at", "close_reason"}

// WriteCSV writes trades in the spreadsheet export layout.
func WriteCSV(w io.Writer, trades []TradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			strconv.Itoa(t.Nro),
			t.Pair,
			f(t.OpenPrice),
			f(t.TakeProfit),
			f(t.StopLoss),
			t.OpenedAt,
			t.ClosedAt,
			t.CloseReason,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV. Columns are located by header name.
func ReadCSV(r io.Reader) ([]TradeRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range []string{"nro", "pair", "open_price", "take_profit", "stop_loss", "opened_at"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := []TradeRecord{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		nro, err := strconv.Atoi(get(row, "nro"))
		if err != nil {
			return nil, fmt.Errorf("line %d: nro: %w", line, err)
		}
		rec := TradeRecord{
			Nro:         nro,
			Pair:        get(row, "pair"),
			OpenedAt:    get(row, "opened_at"),
			ClosedAt:    get(row, "closed_at"),
			CloseReason: get(row, "close_reason"),
			Images:      []string{},
		}
		for name, dst := range map[string]*float64{
			"open_price":  &rec.OpenPrice,
			"take_profit": &rec.TakeProfit,
			"stop_loss":   &rec.StopLoss,
		} {
			v, err := strconv.ParseFloat(get(row, name), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, name, err)
			}
			*dst = v
		}
		out = append(out, rec)
	}
	return out, nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
