package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOpenedBetween(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestSQLite(t)

	require.NoError(t, s.Import(ctx, []TradeRecord{
		{Nro: 1, Pair: "BTC/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5, OpenedAt: "2024-07-14 23:59"},
		{Nro: 2, Pair: "ETH/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5, OpenedAt: "2024-07-15 00:00"},
		{Nro: 3, Pair: "BTC/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5, OpenedAt: "2024-07-15 18:30"},
		{Nro: 4, Pair: "SOL/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5, OpenedAt: "2024-07-16 00:00"},
	}))

	start, end, err := DayBounds(time.Local, "2024-07-15")
	require.NoError(t, err)

	got, err := s.ListOpenedBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Nro)
	assert.Equal(t, 3, got[1].Nro)

	btc, err := s.ListByPair(ctx, "BTC/USDT")
	require.NoError(t, err)
	require.Len(t, btc, 2)
	assert.Equal(t, 1, btc[0].Nro)
}

func TestDayBounds(t *testing.T) {
	t.Parallel()

	start, end, err := DayBounds(time.UTC, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), end)

	_, _, err = DayBounds(time.UTC, "15/01/2024")
	assert.Error(t, err)
}
