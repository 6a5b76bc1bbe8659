package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrNotFound     = errors.New("trade not found")
	ErrDuplicateNro = errors.New("duplicate trade number")
)

// Store is the persistence collaborator for trades. Create must be
// serialized per store so that Nro stays unique.
type Store interface {
	List(ctx context.Context) ([]TradeRecord, error)
	Get(ctx context.Context, nro int) (TradeRecord, error)
	Create(ctx context.Context, c Candidate) (TradeRecord, error)
	Update(ctx context.Context, nro int, p Patch) (TradeRecord, error)
	Delete(ctx context.Context, nro int) error
	Close() error
}

// Importer is implemented by stores that can load records keeping their Nro.
type Importer interface {
	Import(ctx context.Context, trades []TradeRecord) error
}

// checkImport rejects records that would break Nro uniqueness, the field
// invariants or the closure invariant.
func checkImport(existing, incoming []TradeRecord) error {
	seen := make(map[int]bool, len(existing)+len(incoming))
	for _, t := range existing {
		seen[t.Nro] = true
	}
	for _, t := range incoming {
		if t.Nro <= 0 {
			return fmt.Errorf("trade %d: invalid number", t.Nro)
		}
		if seen[t.Nro] {
			return fmt.Errorf("trade %d: %w", t.Nro, ErrDuplicateNro)
		}
		seen[t.Nro] = true
		if err := ValidateRecord(t); err != nil {
			return fmt.Errorf("trade %d: %w", t.Nro, err)
		}
		if err := CheckClosure(t); err != nil {
			return fmt.Errorf("trade %d: %w", t.Nro, err)
		}
	}
	return nil
}

type storeOptions struct {
	now func() time.Time
	log zerolog.Logger
}

// Option configures a store.
type Option func(*storeOptions)

// WithClock overrides the clock used to stamp OpenedAt.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) { o.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(o *storeOptions) { o.log = log }
}

func newStoreOptions(opts []Option) storeOptions {
	o := storeOptions{now: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
