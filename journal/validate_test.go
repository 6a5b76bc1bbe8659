package journal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Candidate
		want error
	}{
		{"valid", Candidate{Pair: "BTC/USDT", OpenPrice: 100, TakeProfit: 110, StopLoss: 90}, nil},
		{"empty pair", Candidate{Pair: "", OpenPrice: 1, TakeProfit: 1, StopLoss: 1}, ErrPairRequired},
		{"blank pair", Candidate{Pair: "   ", OpenPrice: 1, TakeProfit: 1, StopLoss: 1}, ErrPairRequired},
		{"pair checked first", Candidate{}, ErrPairRequired},
		{"zero open", Candidate{Pair: "X", TakeProfit: 1, StopLoss: 1}, ErrInvalidOpenPrice},
		{"negative open", Candidate{Pair: "X", OpenPrice: -1, TakeProfit: 1, StopLoss: 1}, ErrInvalidOpenPrice},
		{"NaN open", Candidate{Pair: "X", OpenPrice: math.NaN(), TakeProfit: 1, StopLoss: 1}, ErrInvalidOpenPrice},
		{"zero take profit", Candidate{Pair: "X", OpenPrice: 1, StopLoss: 1}, ErrInvalidTakeProfit},
		{"negative stop", Candidate{Pair: "X", OpenPrice: 1, TakeProfit: 1, StopLoss: -5}, ErrInvalidStopLoss},
		{"no cross-field check", Candidate{Pair: "X", OpenPrice: 100, TakeProfit: 50, StopLoss: 200}, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.in)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestValidateMessages(t *testing.T) {
	t.Parallel()

	assert.EqualError(t, Validate(Candidate{Pair: "", OpenPrice: 1, TakeProfit: 1, StopLoss: 1}), "pair is required")
	assert.EqualError(t, Validate(Candidate{Pair: "X"}), "invalid open price")
	assert.EqualError(t, Validate(Candidate{Pair: "X", OpenPrice: 1}), "invalid take profit")
	assert.EqualError(t, Validate(Candidate{Pair: "X", OpenPrice: 1, TakeProfit: 1}), "invalid stop loss")
}

func TestValidateRecord(t *testing.T) {
	t.Parallel()

	good := TradeRecord{Nro: 1, Pair: "BTC/USDT", OpenPrice: 1, TakeProfit: 2, StopLoss: 0.5, OpenedAt: "2024-07-15 09:00"}
	assert.NoError(t, ValidateRecord(good))

	blank := good
	blank.Pair = "  "
	assert.ErrorIs(t, ValidateRecord(blank), ErrPairRequired)

	neg := good
	neg.OpenPrice = -5
	assert.ErrorIs(t, ValidateRecord(neg), ErrInvalidOpenPrice)

	for _, when := range []string{"", "soon"} {
		bad := good
		bad.OpenedAt = when
		err := ValidateRecord(bad)
		assert.ErrorIs(t, err, ErrInvalidOpenedAt)
		assert.True(t, IsValidationError(err))
	}
}

func TestCheckClosure(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckClosure(TradeRecord{}))
	assert.NoError(t, CheckClosure(TradeRecord{ClosedAt: "2024-07-15 15:30"}))
	assert.NoError(t, CheckClosure(TradeRecord{ClosedAt: "2024-07-15 15:30", CloseReason: "tp"}))
	assert.ErrorIs(t, CheckClosure(TradeRecord{CloseReason: "tp"}), ErrReasonWithoutClose)
}

func TestNextNro(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, NextNro(nil))
	assert.Equal(t, 1, NextNro([]TradeRecord{}))
	assert.Equal(t, 6, NextNro([]TradeRecord{{Nro: 1}, {Nro: 5}, {Nro: 3}}))

	snapshot := []TradeRecord{{Nro: 2}, {Nro: 7}}
	assert.Equal(t, NextNro(snapshot), NextNro(snapshot))
}

func TestNew(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 7, 16, 10, 15, 42, 0, time.Local)
	existing := []TradeRecord{{Nro: 1}, {Nro: 4}}

	rec, err := New(existing, Candidate{Pair: "  ETH/USDT ", OpenPrice: 3500, TakeProfit: 3700, StopLoss: 3400}, now)
	require.NoError(t, err)

	assert.Equal(t, 5, rec.Nro)
	assert.Equal(t, "ETH/USDT", rec.Pair)
	assert.Equal(t, "2024-07-16 10:15", rec.OpenedAt)
	assert.True(t, rec.IsOpen())
	assert.NotNil(t, rec.Images)
	assert.Empty(t, rec.Images)
	assert.Len(t, existing, 2)

	_, err = New(existing, Candidate{Pair: "ETH/USDT"}, now)
	assert.ErrorIs(t, err, ErrInvalidOpenPrice)
}

func TestApplyDoesNotMutate(t *testing.T) {
	t.Parallel()

	orig := TradeRecord{Nro: 1, Pair: "BTC/USDT", Images: []string{"a"}}
	imgs := []string{"b", "c"}
	notes := "moved stop"

	next := Apply(orig, Patch{Images: &imgs, Notes: &notes})
	next.Images[0] = "z"

	assert.Equal(t, []string{"a"}, orig.Images)
	assert.Equal(t, "", orig.Notes)
	assert.Equal(t, []string{"b", "c"}, imgs)
	assert.Equal(t, "moved stop", next.Notes)

	closed := Close(orig, time.Date(2024, 7, 15, 15, 30, 0, 0, time.Local), "tp")
	assert.True(t, closed.IsClosed())
	assert.Equal(t, "2024-07-15 15:30", closed.ClosedAt)
	assert.True(t, orig.IsOpen())
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"2024-07-15 09:00", "2024-07-15T09:00", "2024-07-15 09:00:00", "2024-07-15"} {
		got, err := ParseTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, 2024, got.Year())
		assert.Equal(t, time.July, got.Month())
		assert.Equal(t, 15, got.Day())
	}

	_, err := ParseTime("yesterday")
	assert.Error(t, err)
}
