// Package persist saves and restores the ledger state as a single versioned
// JSON blob, either in a file or in a SQLite table.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/rustyeddy/folio/ledger"
	"github.com/rustyeddy/folio/pkg/id"
)

// CurrentVersion is the blob layout written by Encode.
const CurrentVersion = 1

// DefaultKey is the storage key the blob is kept under.
const DefaultKey = "folio-ledger"

var ErrUnsupportedVersion = errors.New("unsupported ledger blob version")

type blob struct {
	Version       int               `json:"version"`
	Holdings      []ledger.Holding  `json:"holdings"`
	Trades        []ledger.Trade    `json:"trades"`
	EquityHistory []ledger.Snapshot `json:"equityHistory"`
	Watchlist     []string          `json:"watchlist"`
	Settings      ledger.Settings   `json:"settings"`
}

// Encode serializes st at CurrentVersion.
func Encode(st ledger.State) ([]byte, error) {
	st = st.Clone()
	b := blob{
		Version:       CurrentVersion,
		Holdings:      st.Holdings,
		Trades:        st.Trades,
		EquityHistory: st.EquityHistory,
		Watchlist:     st.Watchlist,
		Settings:      st.Settings,
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return data, nil
}

// Decode parses a blob of any known version. Blobs without a version field
// are treated as version 0 and migrated. The returned bool reports whether
// a migration was applied, so the caller can write the upgraded blob back.
func Decode(data []byte) (ledger.State, bool, error) {
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return ledger.State{}, false, fmt.Errorf("decode ledger: %w", err)
	}
	if b.Version > CurrentVersion || b.Version < 0 {
		return ledger.State{}, false, fmt.Errorf("%w: %d", ErrUnsupportedVersion, b.Version)
	}

	migrated := migrate(&b)

	st := ledger.State{
		Holdings:      b.Holdings,
		Trades:        b.Trades,
		EquityHistory: b.EquityHistory,
		Watchlist:     b.Watchlist,
		Settings:      b.Settings,
	}
	return st.Clone(), migrated, nil
}

// migrate upgrades b in place to CurrentVersion. Returns true if anything
// changed.
func migrate(b *blob) bool {
	if b.Version >= CurrentVersion {
		return false
	}

	// 0 -> 1: unversioned blobs may carry sold-out holdings, records
	// without ids, unordered equity samples and duplicate watchlist entries.
	if b.Version < 1 {
		holdings := b.Holdings[:0]
		for _, h := range b.Holdings {
			if h.Quantity <= 0 {
				continue
			}
			if h.ID == "" {
				h.ID = id.New()
			}
			if h.CurrentPrice == 0 {
				h.CurrentPrice = h.BuyPrice
			}
			holdings = append(holdings, h)
		}
		b.Holdings = holdings

		for i := range b.Trades {
			if b.Trades[i].ID == "" {
				b.Trades[i].ID = id.New()
			}
			if b.Trades[i].Side == "" {
				b.Trades[i].Side = ledger.Buy
			}
			if b.Trades[i].Status == "" {
				b.Trades[i].Status = ledger.Open
			}
			repairClosed(&b.Trades[i])
		}

		sort.SliceStable(b.EquityHistory, func(i, j int) bool {
			return b.EquityHistory[i].Time.Before(b.EquityHistory[j].Time)
		})

		seen := make(map[string]bool, len(b.Watchlist))
		watch := b.Watchlist[:0]
		for _, s := range b.Watchlist {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			watch = append(watch, s)
		}
		b.Watchlist = watch

		if b.Settings.EquityWindow <= 0 {
			b.Settings.EquityWindow = ledger.DefaultEquityWindow
		}
		b.Version = 1
	}

	return true
}

// repairClosed makes a legacy closed trade consistent: without an exit
// price it is reopened, otherwise a missing PnL is recomputed and a missing
// close time falls back to the creation time.
func repairClosed(t *ledger.Trade) {
	if !t.IsClosed() {
		return
	}
	if t.ExitPrice == nil {
		t.Status = ledger.Open
		t.ClosedAt = nil
		t.PnL = 0
		return
	}
	if t.PnL == 0 {
		t.PnL = (*t.ExitPrice - t.EntryPrice) * t.Quantity
	}
	if t.ClosedAt == nil {
		at := t.CreatedAt
		t.ClosedAt = &at
	}
}
