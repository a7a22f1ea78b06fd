package persist

const Schema = `
CREATE TABLE IF NOT EXISTS ledger_state (
	key TEXT PRIMARY KEY,
	version INTEGER NOT NULL,
	blob TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`
