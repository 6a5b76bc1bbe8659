package journal

import (
	"context"
	"fmt"
	"time"
)

// ListOpenedBetween returns trades whose opened_at is within [start, end).
// opened_at is stored in TimeLayout, so string order is chronological.
func (s *SQLiteStore) ListOpenedBetween(ctx context.Context, start, end time.Time) ([]TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE opened_at >= ? AND opened_at < ?
		ORDER BY opened_at ASC, nro ASC`, FormatTime(start), FormatTime(end))
	if err != nil {
		return nil, fmt.Errorf("list trades opened between: %w", err)
	}
	return scanTrades(rows)
}

// ListByPair returns the trades on one instrument in Nro order.
func (s *SQLiteStore) ListByPair(ctx context.Context, pair string) ([]TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE pair = ?
		ORDER BY nro ASC`, pair)
	if err != nil {
		return nil, fmt.Errorf("list trades by pair: %w", err)
	}
	return scanTrades(rows)
}

// DayBounds returns local midnight of day and the following midnight.
func DayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
