package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	quantity REAL NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	entry_time DATETIME NOT NULL,
	exit_time DATETIME NOT NULL,
	pnl REAL NOT NULL,
	return_pct REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	equity REAL NOT NULL,
	cash REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_equity_run_time ON equity(run_id, time);

CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	dataset TEXT NOT NULL,
	initial_capital REAL NOT NULL,
	final_equity REAL NOT NULL,
	total_return REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	sharpe_ratio REAL NOT NULL,
	trades INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	profit_factor REAL NOT NULL
);
`
