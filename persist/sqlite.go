package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/folio/ledger"
)

// SQLiteBackend keeps the blob as one row of the ledger_state table.
type SQLiteBackend struct {
	db  *sql.DB
	key string
	now func() time.Time
}

func NewSQLite(path, key string) (*SQLiteBackend, error) {
	if key == "" {
		key = DefaultKey
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteBackend{db: db, key: key, now: time.Now}, nil
}

func (s *SQLiteBackend) Load(ctx context.Context) (ledger.State, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM ledger_state WHERE key = ?`, s.key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.State{}, false, nil
	}
	if err != nil {
		return ledger.State{}, false, fmt.Errorf("load %s: %w", s.key, err)
	}

	st, migrated, err := Decode([]byte(data))
	if err != nil {
		return ledger.State{}, false, fmt.Errorf("%s: %w", s.key, err)
	}
	if migrated {
		if err := s.Save(ctx, st); err != nil {
			return ledger.State{}, false, err
		}
	}
	return st, true, nil
}

func (s *SQLiteBackend) Save(ctx context.Context, st ledger.State) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ledger_state (key, version, blob, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			blob = excluded.blob,
			updated_at = excluded.updated_at`,
		s.key, CurrentVersion, string(data), s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// UpdatedAt reports when the blob was last saved.
func (s *SQLiteBackend) UpdatedAt(ctx context.Context) (time.Time, error) {
	var at time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT updated_at FROM ledger_state WHERE key = ?`, s.key,
	).Scan(&at)
	if err != nil {
		return time.Time{}, fmt.Errorf("updated_at %s: %w", s.key, err)
	}
	return at, nil
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
