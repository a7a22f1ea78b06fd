package persist

import (
	"context"
	"fmt"

	"github.com/rustyeddy/folio/config"
	"github.com/rustyeddy/folio/ledger"
)

// Backend stores one ledger blob. Load reports found=false when nothing
// has been saved yet.
type Backend interface {
	Load(ctx context.Context) (st ledger.State, found bool, err error)
	Save(ctx context.Context, st ledger.State) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Type {
	case "", "json":
		return NewFile(cfg.Path), nil
	case "sqlite":
		return NewSQLite(cfg.Path, cfg.Key)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// LoadInto restores the saved state, if any, into store. New stores pick
// up defaults as their settings.
func LoadInto(ctx context.Context, b Backend, store *ledger.Store, defaults ledger.Settings) error {
	st, found, err := b.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		store.Restore(ledger.State{Settings: defaults})
		return nil
	}
	if st.Settings.Currency == "" {
		st.Settings.Currency = defaults.Currency
	}
	store.Restore(st)
	return nil
}
