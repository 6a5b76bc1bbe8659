package journal

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/pkg/id"
)

// MemoryStore keeps trades in process. Useful for tests and for `serve` without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	trades map[int]TradeRecord
	opts   storeOptions
	log    zerolog.Logger
}

func NewMemory(opts ...Option) *MemoryStore {
	o := newStoreOptions(opts)
	return &MemoryStore{
		trades: make(map[int]TradeRecord),
		opts:   o,
		log:    o.log.With().Str("store", "memory").Logger(),
	}
}

// Import loads trades as-is, keeping their Nro. It is all-or-nothing.
func (s *MemoryStore) Import(ctx context.Context, trades []TradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkImport(s.snapshot(), trades); err != nil {
		return err
	}
	now := s.opts.now()
	for _, t := range trades {
		if t.ID == "" {
			t.ID = id.At(now)
		}
		t.Images = cloneImages(t.Images)
		s.trades[t.Nro] = t
	}
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]TradeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(), nil
}

func (s *MemoryStore) snapshot() []TradeRecord {
	out := make([]TradeRecord, 0, len(s.trades))
	for _, t := range s.trades {
		t.Images = cloneImages(t.Images)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nro < out[j].Nro })
	return out
}

func (s *MemoryStore) Get(ctx context.Context, nro int) (TradeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trades[nro]
	if !ok {
		return TradeRecord{}, ErrNotFound
	}
	t.Images = cloneImages(t.Images)
	return t, nil
}

func (s *MemoryStore) Create(ctx context.Context, c Candidate) (TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now()
	rec, err := New(s.snapshot(), c, now)
	if err != nil {
		return TradeRecord{}, err
	}
	rec.ID = id.At(now)
	s.trades[rec.Nro] = rec

	s.log.Info().Int("nro", rec.Nro).Str("pair", rec.Pair).Msg("Trade created")
	return Apply(rec, Patch{}), nil
}

func (s *MemoryStore) Update(ctx context.Context, nro int, p Patch) (TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trades[nro]
	if !ok {
		return TradeRecord{}, ErrNotFound
	}
	next := Apply(t, p)
	if err := CheckClosure(next); err != nil {
		return TradeRecord{}, err
	}
	s.trades[nro] = next
	return Apply(next, Patch{}), nil
}

func (s *MemoryStore) Delete(ctx context.Context, nro int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trades[nro]; !ok {
		return ErrNotFound
	}
	delete(s.trades, nro)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
