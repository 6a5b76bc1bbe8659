package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

const BackupVersion = "1.0.0"

// Backup is the JSON document written by `export --format json`.
type Backup struct {
	Version    string        `json:"version"`
	ExportedAt time.Time     `json:"exportDate"`
	Trades     []TradeRecord `json:"trades"`
}

func WriteBackup(w io.Writer, trades []TradeRecord, now time.Time) error {
	if trades == nil {
		trades = []TradeRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Backup{
		Version:    BackupVersion,
		ExportedAt: now.UTC(),
		Trades:     trades,
	})
}

// ReadBackup accepts either a Backup document or a bare JSON array of trades.
func ReadBackup(r io.Reader) (Backup, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Backup{}, err
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		var trades []TradeRecord
		if err2 := json.Unmarshal(data, &trades); err2 != nil {
			return Backup{}, fmt.Errorf("parse backup: %w", err)
		}
		b = Backup{Trades: trades}
	}
	for i := range b.Trades {
		if b.Trades[i].Images == nil {
			b.Trades[i].Images = []string{}
		}
	}
	if b.Trades == nil {
		b.Trades = []TradeRecord{}
	}
	return b, nil
}
