package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/filter"
)

// filterFlags binds filter.Options to command flags. Float bounds are only
// set when the flag was given, so an explicit 0 is a real bound.
type filterFlags struct {
	opts   filter.Options
	status string
	floats map[string]*float64
}

func addFilterFlags(cmd *cobra.Command) *filterFlags {
	ff := &filterFlags{floats: map[string]*float64{}}
	f := cmd.Flags()
	f.StringVar(&ff.opts.DateFrom, "from", "", "opened at or after (YYYY-MM-DD[ HH:MM])")
	f.StringVar(&ff.opts.DateTo, "to", "", "opened at or before (YYYY-MM-DD[ HH:MM])")
	f.StringVar(&ff.opts.Pair, "pair", "", "exact pair, e.g. BTC/USDT")
	f.StringVar(&ff.status, "status", "all", "open, closed or all")

	for _, name := range []string{"price-from", "price-to", "tp-from", "tp-to", "sl-from", "sl-to"} {
		v := new(float64)
		ff.floats[name] = v
		f.Float64Var(v, name, 0, "inclusive bound")
	}
	return ff
}

func (ff *filterFlags) options(cmd *cobra.Command) (filter.Options, error) {
	o := ff.opts
	o.Status = filter.Status(ff.status)

	set := func(name string, dst **float64) {
		if cmd.Flags().Changed(name) {
			*dst = filter.Float(*ff.floats[name])
		}
	}
	set("price-from", &o.PriceFrom)
	set("price-to", &o.PriceTo)
	set("tp-from", &o.TakeProfitFrom)
	set("tp-to", &o.TakeProfitTo)
	set("sl-from", &o.StopLossFrom)
	set("sl-to", &o.StopLossTo)

	if err := o.Validate(); err != nil {
		return filter.Options{}, err
	}
	return o, nil
}
