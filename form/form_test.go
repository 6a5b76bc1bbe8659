package form

import (
	"testing"

	"github.com/rustyeddy/tradejournal/filter"
	"github.com/stretchr/testify/assert"
)

func TestInitialState(t *testing.T) {
	t.Parallel()

	s := InitialState()
	assert.False(t, s.Open)
	assert.Equal(t, Fields{"pair": "", "openPrice": "", "takeProfit": "", "stopLoss": "", "notes": ""}, s.Fields)
	assert.Empty(t, s.SuccessMessage)
	assert.Empty(t, s.ErrorMessage)
	assert.True(t, s.Filters.IsZero())
}

func TestReduceModal(t *testing.T) {
	t.Parallel()

	s := Reduce(InitialState(), UpdateForm{Patch: Fields{FieldPair: "BTC/USDT"}})
	s = Reduce(s, OpenModal{})
	assert.True(t, s.Open)
	assert.Equal(t, "BTC/USDT", s.Fields[FieldPair])

	s = Reduce(s, OpenModal{})
	assert.True(t, s.Open)

	s = Reduce(s, CloseModal{})
	assert.False(t, s.Open)
	assert.Equal(t, "BTC/USDT", s.Fields[FieldPair])

	s = Reduce(s, CloseModal{})
	assert.False(t, s.Open)
}

func TestReduceUpdateForm(t *testing.T) {
	t.Parallel()

	s := Reduce(InitialState(), UpdateForm{Patch: Fields{FieldPair: "ETH/USDT", FieldOpenPrice: "3500"}})
	s = Reduce(s, UpdateForm{Patch: Fields{FieldOpenPrice: "3600"}})

	assert.Equal(t, "ETH/USDT", s.Fields[FieldPair])
	assert.Equal(t, "3600", s.Fields[FieldOpenPrice])
	assert.Equal(t, "", s.Fields[FieldStopLoss])
	assert.False(t, s.Open)

	s = Reduce(s, ResetForm{})
	assert.Equal(t, InitialFields(), s.Fields)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	before := InitialState()
	after := Reduce(before, UpdateForm{Patch: Fields{FieldPair: "SOL/USDT"}})

	assert.Equal(t, "", before.Fields[FieldPair])
	assert.Equal(t, "SOL/USDT", after.Fields[FieldPair])

	after.Fields[FieldNotes] = "x"
	assert.Equal(t, "", before.Fields[FieldNotes])
}

func TestReduceMessagesMutuallyExclusive(t *testing.T) {
	t.Parallel()

	s := Reduce(InitialState(), SetSuccessMessage{Text: "saved"})
	assert.Equal(t, "saved", s.SuccessMessage)
	assert.Empty(t, s.ErrorMessage)

	s = Reduce(s, SetErrorMessage{Text: "failed"})
	assert.Equal(t, "failed", s.ErrorMessage)
	assert.Empty(t, s.SuccessMessage)

	s = Reduce(s, SetSuccessMessage{Text: "saved again"})
	assert.Equal(t, "saved again", s.SuccessMessage)
	assert.Empty(t, s.ErrorMessage)

	s = Reduce(s, ClearMessages{})
	assert.Empty(t, s.SuccessMessage)
	assert.Empty(t, s.ErrorMessage)
}

func TestReduceFilters(t *testing.T) {
	t.Parallel()

	opts := filter.Options{Pair: "BTC/USDT", Status: filter.StatusOpen}
	s := Reduce(InitialState(), UpdateForm{Patch: Fields{FieldPair: "ETH/USDT"}})
	s = Reduce(s, UpdateFilters{Options: opts})

	assert.Equal(t, opts, s.Filters)
	assert.Equal(t, "ETH/USDT", s.Fields[FieldPair])

	s = Reduce(s, ClearFilters{})
	assert.True(t, s.Filters.IsZero())
	assert.Equal(t, "ETH/USDT", s.Fields[FieldPair])
}

func TestReduceFiltersDoNotShareBounds(t *testing.T) {
	t.Parallel()

	s := Reduce(InitialState(), UpdateFilters{Options: filter.Options{PriceTo: filter.Float(5)}})
	next := Reduce(s, OpenModal{})
	*next.Filters.PriceTo = 7

	assert.Equal(t, 5.0, *s.Filters.PriceTo)
}

func TestReduceNilState(t *testing.T) {
	t.Parallel()

	s := Reduce(State{}, nil)
	assert.Equal(t, InitialFields(), s.Fields)

	s = Reduce(State{}, UpdateForm{Patch: Fields{FieldPair: "X"}})
	assert.Equal(t, "X", s.Fields[FieldPair])
}

func TestCandidate(t *testing.T) {
	t.Parallel()

	c := Candidate(Fields{
		FieldPair:       "BTC/USDT",
		FieldOpenPrice:  " 65000 ",
		FieldTakeProfit: "67000.5",
		FieldStopLoss:   "abc",
		FieldNotes:      "breakout",
	})

	assert.Equal(t, "BTC/USDT", c.Pair)
	assert.Equal(t, 65000.0, c.OpenPrice)
	assert.Equal(t, 67000.5, c.TakeProfit)
	assert.Equal(t, 0.0, c.StopLoss)
	assert.Equal(t, "breakout", c.Notes)
	assert.NotNil(t, c.Images)
}
