package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/pkg/id"
)

// SQLiteStore persists trades in a single SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex // serializes Create so Nro is computed on the committed snapshot
	opts storeOptions
	log  zerolog.Logger
}

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string, opts ...Option) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection: a single writer, and ":memory:" stays one database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	o := newStoreOptions(opts)
	return &SQLiteStore{
		db:   db,
		opts: o,
		log:  o.log.With().Str("store", "sqlite").Str("path", path).Logger(),
	}, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_txlock=immediate"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (TradeRecord, error) {
	var (
		rec    TradeRecord
		images string
	)
	err := row.Scan(
		&rec.ID,
		&rec.Nro,
		&rec.Pair,
		&rec.OpenPrice,
		&rec.TakeProfit,
		&rec.StopLoss,
		&rec.OpenedAt,
		&rec.ClosedAt,
		&rec.CloseReason,
		&rec.Notes,
		&images,
	)
	if err != nil {
		return TradeRecord{}, err
	}
	rec.Images, err = decodeImages(images)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("trade %d images: %w", rec.Nro, err)
	}
	return rec, nil
}

func scanTrades(rows *sql.Rows) ([]TradeRecord, error) {
	defer rows.Close()

	out := []TradeRecord{}
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeImages(s string) ([]string, error) {
	images := []string{}
	if strings.TrimSpace(s) == "" {
		return images, nil
	}
	if err := json.Unmarshal([]byte(s), &images); err != nil {
		return nil, err
	}
	if images == nil {
		images = []string{}
	}
	return images, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY nro ASC`)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return scanTrades(rows)
}

func (s *SQLiteStore) Get(ctx context.Context, nro int) (TradeRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE nro = ?`, nro)
	rec, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TradeRecord{}, fmt.Errorf("trade %d: %w", nro, ErrNotFound)
	}
	if err != nil {
		return TradeRecord{}, fmt.Errorf("get trade %d: %w", nro, err)
	}
	return rec, nil
}

// Create validates c, numbers it against the committed rows and inserts it,
// all inside one immediate transaction.
func (s *SQLiteStore) Create(ctx context.Context, c Candidate) (TradeRecord, error) {
	if err := Validate(c); err != nil {
		return TradeRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := numbers(ctx, tx)
	if err != nil {
		return TradeRecord{}, err
	}

	now := s.opts.now()
	rec, err := New(existing, c, now)
	if err != nil {
		return TradeRecord{}, err
	}
	rec.ID = id.At(now)

	if err := insert(ctx, tx, rec, now); err != nil {
		return TradeRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return TradeRecord{}, fmt.Errorf("commit: %w", err)
	}

	s.log.Info().
		Int("nro", rec.Nro).
		Str("pair", rec.Pair).
		Float64("open_price", rec.OpenPrice).
		Msg("Trade created")
	return rec, nil
}

// numbers loads only the Nro of every committed trade.
func numbers(ctx context.Context, tx *sql.Tx) ([]TradeRecord, error) {
	rows, err := tx.QueryContext(ctx, `SELECT nro FROM trades`)
	if err != nil {
		return nil, fmt.Errorf("load numbers: %w", err)
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(&rec.Nro); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func insert(ctx context.Context, tx *sql.Tx, rec TradeRecord, now time.Time) error {
	images, err := encodeImages(rec.Images)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO trades
		(trade_id, nro, pair, open_price, take_profit, stop_loss, opened_at, closed_at, close_reason, notes, images, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Nro, rec.Pair, rec.OpenPrice, rec.TakeProfit, rec.StopLoss,
		rec.OpenedAt, rec.ClosedAt, rec.CloseReason, rec.Notes, images, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert trade %d: %w", rec.Nro, err)
	}
	return nil
}

// Import inserts records as-is, keeping their Nro. It is all-or-nothing.
func (s *SQLiteStore) Import(ctx context.Context, trades []TradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := numbers(ctx, tx)
	if err != nil {
		return err
	}
	if err := checkImport(existing, trades); err != nil {
		return err
	}

	now := s.opts.now()
	for _, rec := range trades {
		if rec.ID == "" {
			rec.ID = id.At(now)
		}
		if err := insert(ctx, tx, rec, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.log.Info().Int("count", len(trades)).Msg("Trades imported")
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, nro int, p Patch) (TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.Get(ctx, nro)
	if err != nil {
		return TradeRecord{}, err
	}
	next := Apply(cur, p)
	if err := CheckClosure(next); err != nil {
		return TradeRecord{}, err
	}
	images, err := encodeImages(next.Images)
	if err != nil {
		return TradeRecord{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE trades
		SET closed_at = ?, close_reason = ?, notes = ?, images = ?, updated_at = ?
		WHERE nro = ?`,
		next.ClosedAt, next.CloseReason, next.Notes, images, s.opts.now(), nro,
	)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("update trade %d: %w", nro, err)
	}

	s.log.Debug().Int("nro", nro).Bool("closed", next.IsClosed()).Msg("Trade updated")
	return next, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, nro int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE nro = ?`, nro)
	if err != nil {
		return fmt.Errorf("delete trade %d: %w", nro, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %d: %w", nro, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
