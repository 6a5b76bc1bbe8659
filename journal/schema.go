// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	nro INTEGER NOT NULL UNIQUE,
	pair TEXT NOT NULL,
	open_price REAL NOT NULL,
	take_profit REAL NOT NULL,
	stop_loss REAL NOT NULL,
	opened_at TEXT NOT NULL,
	closed_at TEXT NOT NULL DEFAULT '',
	close_reason TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	images TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_opened_at ON trades(opened_at);
CREATE INDEX IF NOT EXISTS idx_trades_pair ON trades(pair);
`

const tradeColumns = `trade_id, nro, pair, open_price, take_profit, stop_loss, opened_at, closed_at, close_reason, notes, images`
