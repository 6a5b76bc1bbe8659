package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	var mu sync.Mutex
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur := t
		t = t.Add(time.Minute)
		return cur
	}
}

func newTestSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLite(path, WithClock(fixedClock(time.Date(2024, 7, 15, 9, 0, 0, 0, time.Local))))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

// storeFactories runs the same contract against every Store implementation.
func storeFactories() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"sqlite": func(t *testing.T) Store {
			s, _ := newTestSQLite(t)
			return s
		},
		"memory": func(t *testing.T) Store {
			return NewMemory(WithClock(fixedClock(time.Date(2024, 7, 15, 9, 0, 0, 0, time.Local))))
		},
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = 'trades'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestStoreCreateAssignsSequentialNro(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := factory(t)

			first, err := s.Create(ctx, Candidate{Pair: "BTC/USDT", OpenPrice: 65000, TakeProfit: 67000, StopLoss: 64000})
			require.NoError(t, err)
			second, err := s.Create(ctx, Candidate{Pair: "ETH/USDT", OpenPrice: 3500, TakeProfit: 3700, StopLoss: 3400, Images: []string{"u1"}})
			require.NoError(t, err)

			assert.Equal(t, 1, first.Nro)
			assert.Equal(t, 2, second.Nro)
			assert.NotEmpty(t, first.ID)
			assert.NotEqual(t, first.ID, second.ID)
			assert.Equal(t, "2024-07-15 09:00", first.OpenedAt)
			assert.Equal(t, "2024-07-15 09:01", second.OpenedAt)

			all, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "BTC/USDT", all[0].Pair)
			assert.Equal(t, []string{}, all[0].Images)
			assert.Equal(t, []string{"u1"}, all[1].Images)
		})
	}
}

func TestStoreCreateRejectsInvalid(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := factory(t)

			_, err := s.Create(ctx, Candidate{Pair: "", OpenPrice: 1, TakeProfit: 1, StopLoss: 1})
			assert.ErrorIs(t, err, ErrPairRequired)

			all, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestStoreNroNotReusedAfterDeleteOfEarlier(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := factory(t)

			for i := 0; i < 3; i++ {
				_, err := s.Create(ctx, Candidate{Pair: "BTC/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5})
				require.NoError(t, err)
			}
			require.NoError(t, s.Delete(ctx, 2))

			rec, err := s.Create(ctx, Candidate{Pair: "BTC/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5})
			require.NoError(t, err)
			assert.Equal(t, 4, rec.Nro)

			assert.ErrorIs(t, s.Delete(ctx, 2), ErrNotFound)
			_, err = s.Get(ctx, 2)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreConcurrentCreateUniqueNro(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := factory(t)

			const n = 20
			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := s.Create(ctx, Candidate{Pair: "SOL/USDT", OpenPrice: 150, TakeProfit: 170, StopLoss: 140})
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			all, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, n)
			for i, rec := range all {
				assert.Equal(t, i+1, rec.Nro)
			}
		})
	}
}

func TestStoreUpdateClosesTrade(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := factory(t)

			rec, err := s.Create(ctx, Candidate{Pair: "BTC/USDT", OpenPrice: 65000, TakeProfit: 67000, StopLoss: 64000})
			require.NoError(t, err)

			closed, err := s.Update(ctx, rec.Nro, ClosePatch(time.Date(2024, 7, 15, 15, 30, 0, 0, time.Local), "take profit hit"))
			require.NoError(t, err)
			assert.True(t, closed.IsClosed())
			assert.Equal(t, rec.OpenedAt, closed.OpenedAt)

			got, err := s.Get(ctx, rec.Nro)
			require.NoError(t, err)
			assert.Equal(t, "2024-07-15 15:30", got.ClosedAt)
			assert.Equal(t, "take profit hit", got.CloseReason)

			_, err = s.Update(ctx, 99, Patch{})
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreUpdateRejectsReasonWithoutClose(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := factory(t)

			rec, err := s.Create(ctx, Candidate{Pair: "BTC/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5})
			require.NoError(t, err)

			reason := "manual"
			_, err = s.Update(ctx, rec.Nro, Patch{CloseReason: &reason})
			assert.ErrorIs(t, err, ErrReasonWithoutClose)

			got, err := s.Get(ctx, rec.Nro)
			require.NoError(t, err)
			assert.Empty(t, got.CloseReason)
		})
	}
}

func TestStoreImport(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			s := factory(t)
			imp, ok := s.(Importer)
			require.True(t, ok)

			trades := []TradeRecord{
				{Nro: 3, Pair: "BTC/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5, OpenedAt: "2024-07-15 09:00"},
				{Nro: 7, Pair: "ETH/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5, OpenedAt: "2024-07-16 09:00", ClosedAt: "2024-07-16 12:00"},
			}
			require.NoError(t, imp.Import(ctx, trades))

			rec, err := s.Create(ctx, Candidate{Pair: "BTC/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5})
			require.NoError(t, err)
			assert.Equal(t, 8, rec.Nro)

			err = imp.Import(ctx, []TradeRecord{{Nro: 3, Pair: "X", OpenPrice: 1, TakeProfit: 1, StopLoss: 1}})
			assert.ErrorIs(t, err, ErrDuplicateNro)

			err = imp.Import(ctx, []TradeRecord{{Nro: 11, Pair: "X", OpenPrice: 1, TakeProfit: 1, StopLoss: 1, OpenedAt: "2024-07-17 09:00", CloseReason: "why"}})
			assert.ErrorIs(t, err, ErrReasonWithoutClose)

			err = imp.Import(ctx, []TradeRecord{{Nro: 12, Pair: "  ", OpenPrice: -5}})
			assert.ErrorIs(t, err, ErrPairRequired)
			assert.True(t, IsValidationError(err))

			err = imp.Import(ctx, []TradeRecord{{Nro: 13, Pair: "X", OpenPrice: -5, TakeProfit: 1, StopLoss: 1, OpenedAt: "2024-07-17 09:00"}})
			assert.ErrorIs(t, err, ErrInvalidOpenPrice)

			err = imp.Import(ctx, []TradeRecord{{Nro: 14, Pair: "X", OpenPrice: 1, TakeProfit: 1, StopLoss: 1, OpenedAt: ""}})
			assert.ErrorIs(t, err, ErrInvalidOpenedAt)

			// A bad record anywhere in the batch rejects the whole batch.
			err = imp.Import(ctx, []TradeRecord{
				{Nro: 15, Pair: "X", OpenPrice: 1, TakeProfit: 1, StopLoss: 1, OpenedAt: "2024-07-17 09:00"},
				{Nro: 16, Pair: "X", OpenPrice: 1, TakeProfit: 0, StopLoss: 1, OpenedAt: "2024-07-17 09:00"},
			})
			assert.ErrorIs(t, err, ErrInvalidTakeProfit)

			all, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 3)
		})
	}
}
