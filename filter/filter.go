// Package filter narrows a trade collection with a sparse set of range and
// equality constraints.
package filter

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

type Status string

const (
	StatusAll    Status = "all"
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Options holds optional constraints. A zero Options passes every trade.
type Options struct {
	DateFrom       string   `json:"dateFrom,omitempty" yaml:"date_from,omitempty"`
	DateTo         string   `json:"dateTo,omitempty" yaml:"date_to,omitempty"`
	PriceFrom      *float64 `json:"priceFrom,omitempty" yaml:"price_from,omitempty"`
	PriceTo        *float64 `json:"priceTo,omitempty" yaml:"price_to,omitempty"`
	TakeProfitFrom *float64 `json:"takeProfitFrom,omitempty" yaml:"take_profit_from,omitempty"`
	TakeProfitTo   *float64 `json:"takeProfitTo,omitempty" yaml:"take_profit_to,omitempty"`
	StopLossFrom   *float64 `json:"stopLossFrom,omitempty" yaml:"stop_loss_from,omitempty"`
	StopLossTo     *float64 `json:"stopLossTo,omitempty" yaml:"stop_loss_to,omitempty"`
	Pair           string   `json:"pair,omitempty" yaml:"pair,omitempty"`
	Status         Status   `json:"status,omitempty" yaml:"status,omitempty"`
}

// Predicate reports whether a trade passes.
type Predicate func(journal.TradeRecord) bool

// Float is a helper for populating the pointer bounds.
func Float(v float64) *float64 { return &v }

// Clone returns a copy that shares none of the float bounds with o.
func (o Options) Clone() Options {
	for _, p := range []**float64{
		&o.PriceFrom, &o.PriceTo,
		&o.TakeProfitFrom, &o.TakeProfitTo,
		&o.StopLossFrom, &o.StopLossTo,
	} {
		if *p != nil {
			*p = Float(**p)
		}
	}
	return o
}

func (o Options) IsZero() bool {
	return o.DateFrom == "" && o.DateTo == "" &&
		o.PriceFrom == nil && o.PriceTo == nil &&
		o.TakeProfitFrom == nil && o.TakeProfitTo == nil &&
		o.StopLossFrom == nil && o.StopLossTo == nil &&
		o.Pair == "" && (o.Status == "" || o.Status == StatusAll)
}

// Validate reports bounds Compile would treat as unsatisfiable. Compile itself never fails.
func (o Options) Validate() error {
	switch o.Status {
	case "", StatusAll, StatusOpen, StatusClosed:
	default:
		return fmt.Errorf("unknown status %q", o.Status)
	}
	if o.DateFrom != "" {
		if _, err := journal.ParseTime(o.DateFrom); err != nil {
			return fmt.Errorf("dateFrom: %w", err)
		}
	}
	if o.DateTo != "" {
		if _, err := journal.ParseTime(o.DateTo); err != nil {
			return fmt.Errorf("dateTo: %w", err)
		}
	}
	return nil
}

// Compile returns the AND of one predicate per populated field.
func Compile(o Options) Predicate {
	var preds []Predicate

	if o.DateFrom != "" {
		preds = append(preds, dateBound(o.DateFrom, func(opened, bound time.Time) bool { return !opened.Before(bound) }))
	}
	if o.DateTo != "" {
		preds = append(preds, dateBound(o.DateTo, func(opened, bound time.Time) bool { return !opened.After(bound) }))
	}
	if o.PriceFrom != nil {
		v := *o.PriceFrom
		preds = append(preds, func(t journal.TradeRecord) bool { return t.OpenPrice >= v })
	}
	if o.PriceTo != nil {
		v := *o.PriceTo
		preds = append(preds, func(t journal.TradeRecord) bool { return t.OpenPrice <= v })
	}
	if o.TakeProfitFrom != nil {
		v := *o.TakeProfitFrom
		preds = append(preds, func(t journal.TradeRecord) bool { return t.TakeProfit >= v })
	}
	if o.TakeProfitTo != nil {
		v := *o.TakeProfitTo
		preds = append(preds, func(t journal.TradeRecord) bool { return t.TakeProfit <= v })
	}
	if o.StopLossFrom != nil {
		v := *o.StopLossFrom
		preds = append(preds, func(t journal.TradeRecord) bool { return t.StopLoss >= v })
	}
	if o.StopLossTo != nil {
		v := *o.StopLossTo
		preds = append(preds, func(t journal.TradeRecord) bool { return t.StopLoss <= v })
	}
	if o.Pair != "" {
		pair := o.Pair
		preds = append(preds, func(t journal.TradeRecord) bool { return t.Pair == pair })
	}
	switch o.Status {
	case StatusOpen:
		preds = append(preds, journal.TradeRecord.IsOpen)
	case StatusClosed:
		preds = append(preds, journal.TradeRecord.IsClosed)
	}

	return func(t journal.TradeRecord) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// dateBound compares the parsed OpenedAt against a parsed bound. Either side
// failing to parse makes the predicate reject.
func dateBound(raw string, ok func(opened, bound time.Time) bool) Predicate {
	bound, err := journal.ParseTime(raw)
	if err != nil {
		return func(journal.TradeRecord) bool { return false }
	}
	return func(t journal.TradeRecord) bool {
		opened, err := t.OpenTime()
		if err != nil {
			return false
		}
		return ok(opened, bound)
	}
}

// Apply returns the trades that pass o, in input order. trades is not modified.
func Apply(trades []journal.TradeRecord, o Options) []journal.TradeRecord {
	pred := Compile(o)
	out := make([]journal.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
