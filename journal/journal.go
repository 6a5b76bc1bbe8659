// journal/journal.go
package journal

import (
	"strings"
	"time"
)

// TimeLayout is the minute-precision local layout used for OpenedAt and ClosedAt.
const TimeLayout = "2006-01-02 15:04"

// TradeRecord is one logged operation.
type TradeRecord struct {
	ID          string   `json:"id,omitempty"`
	Nro         int      `json:"nro"`
	Pair        string   `json:"pair"`
	OpenPrice   float64  `json:"openPrice"`
	TakeProfit  float64  `json:"takeProfit"`
	StopLoss    float64  `json:"stopLoss"`
	OpenedAt    string   `json:"openedAt"`
	ClosedAt    string   `json:"closedAt,omitempty"`
	CloseReason string   `json:"closeReason,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Images      []string `json:"images"`
}

// IsClosed reports whether the trade has a close timestamp.
func (t TradeRecord) IsClosed() bool {
	return strings.TrimSpace(t.ClosedAt) != ""
}

func (t TradeRecord) IsOpen() bool {
	return !t.IsClosed()
}

// OpenTime parses OpenedAt in the local time zone.
func (t TradeRecord) OpenTime() (time.Time, error) {
	return ParseTime(t.OpenedAt)
}

// Candidate is the user-supplied part of a new trade. Zero prices mean "missing".
type Candidate struct {
	Pair       string   `json:"pair"`
	OpenPrice  float64  `json:"openPrice"`
	TakeProfit float64  `json:"takeProfit"`
	StopLoss   float64  `json:"stopLoss"`
	Notes      string   `json:"notes,omitempty"`
	Images     []string `json:"images,omitempty"`
}

var timeLayouts = []string{
	TimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseTime accepts the journal layout plus the handful of variants that
// browsers and exports produce. Zone-less values are read as local time.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// FormatTime renders t in the journal layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

func cloneImages(images []string) []string {
	out := make([]string, len(images))
	copy(out, images)
	return out
}
