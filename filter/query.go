package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseQuery builds Options from URL query parameters using the JSON field
// names (dateFrom, priceTo, pair, status, ...). Empty values are ignored.
func ParseQuery(q url.Values) (Options, error) {
	o := Options{
		DateFrom: strings.TrimSpace(q.Get("dateFrom")),
		DateTo:   strings.TrimSpace(q.Get("dateTo")),
		Pair:     strings.TrimSpace(q.Get("pair")),
		Status:   Status(strings.ToLower(strings.TrimSpace(q.Get("status")))),
	}

	bounds := []struct {
		key string
		dst **float64
	}{
		{"priceFrom", &o.PriceFrom},
		{"priceTo", &o.PriceTo},
		{"takeProfitFrom", &o.TakeProfitFrom},
		{"takeProfitTo", &o.TakeProfitTo},
		{"stopLossFrom", &o.StopLossFrom},
		{"stopLossTo", &o.StopLossTo},
	}
	for _, b := range bounds {
		raw := strings.TrimSpace(q.Get(b.key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Options{}, fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = Float(v)
	}

	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}
