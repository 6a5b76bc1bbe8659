package form

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/notify"
)

const (
	DefaultCloseDelay = 1500 * time.Millisecond

	SavedMessage      = "Trade saved successfully!"
	UnexpectedMessage = "unexpected error while saving"
)

// Creator persists a new trade. journal.Store satisfies it.
type Creator interface {
	Create(ctx context.Context, c journal.Candidate) (journal.TradeRecord, error)
}

// Machine holds form state and runs the submit workflow.
type Machine struct {
	mu    sync.Mutex
	state State

	creator    Creator
	notifier   notify.Notifier
	closeDelay time.Duration
	after      func(time.Duration, func())
	log        zerolog.Logger
}

type Option func(*Machine)

// WithCloseDelay sets how long after a successful save the form closes.
// Zero closes it before Submit returns.
func WithCloseDelay(d time.Duration) Option {
	return func(m *Machine) { m.closeDelay = d }
}

// WithAfter replaces time.AfterFunc for scheduling the delayed close.
func WithAfter(after func(time.Duration, func())) Option {
	return func(m *Machine) { m.after = after }
}

func WithLogger(log zerolog.Logger) Option {
	return func(m *Machine) { m.log = log }
}

func NewMachine(creator Creator, n notify.Notifier, opts ...Option) *Machine {
	if n == nil {
		n = notify.Nop
	}
	m := &Machine{
		state:      InitialState(),
		creator:    creator,
		notifier:   n,
		closeDelay: DefaultCloseDelay,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		log: zerolog.Nop(),
	}
	for _, o := range opts {
		o(m)
	}
	m.log = m.log.With().Str("component", "form").Logger()
	return m
}

// Dispatch applies actions in order and returns the resulting state.
func (m *Machine) Dispatch(actions ...Action) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range actions {
		m.state = Reduce(m.state, a)
	}
	return cloneState(m.state)
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneState(m.state)
}

// Submit validates the current fields and creates a trade from them.
// Validation failures and store errors are reported through the error
// message and the notifier, and returned.
func (m *Machine) Submit(ctx context.Context) (journal.TradeRecord, error) {
	st := m.Dispatch(ClearMessages{})

	c := Candidate(st.Fields)
	if err := journal.Validate(c); err != nil {
		m.Dispatch(SetErrorMessage{Text: err.Error()})
		m.notifier.Notify(notify.Error, "Validation error", err.Error())
		return journal.TradeRecord{}, err
	}

	rec, err := m.creator.Create(ctx, c)
	if err != nil {
		m.log.Error().Err(err).Str("pair", c.Pair).Msg("Create trade failed")
		msg := UnexpectedMessage
		if journal.IsValidationError(err) {
			msg = err.Error()
		}
		m.Dispatch(SetErrorMessage{Text: msg})
		m.notifier.Notify(notify.Error, "Error saving trade", msg)
		return journal.TradeRecord{}, fmt.Errorf("create trade: %w", err)
	}

	m.Dispatch(SetSuccessMessage{Text: SavedMessage}, ResetForm{})
	m.notifier.Notify(notify.Success, "Trade saved",
		fmt.Sprintf("New trade #%d %s added", rec.Nro, rec.Pair))

	if m.closeDelay <= 0 {
		m.finish()
	} else {
		m.after(m.closeDelay, m.finish)
	}
	return rec, nil
}

func (m *Machine) finish() {
	m.Dispatch(ClearMessages{}, CloseModal{})
}

func cloneState(s State) State {
	return Reduce(s, nil)
}
