package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/folio/config"
	"github.com/rustyeddy/folio/internal/logging"
	"github.com/rustyeddy/folio/ledger"
)

var t0 = time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)

func sampleState() ledger.State {
	closedAt := t0.Add(time.Hour)
	return ledger.State{
		Holdings: []ledger.Holding{{
			ID: "h1", Symbol: "AAPL", Quantity: 100, BuyPrice: 10, CurrentPrice: 12,
			BuyDate: t0, StopLoss: ledger.Price(9), TrailingStop: true, TrailPercent: 5,
		}},
		Trades: []ledger.Trade{{
			ID: "t1", Symbol: "MSFT", Side: ledger.Buy, Quantity: 2, EntryPrice: 300,
			ExitPrice: ledger.Price(310), Status: ledger.Closed, PnL: 20,
			CreatedAt: t0, ClosedAt: &closedAt,
		}},
		EquityHistory: []ledger.Snapshot{{Time: t0, Value: 1200}},
		Watchlist:     []string{"NVDA"},
		Settings:      ledger.Settings{Currency: "USD", EquityWindow: 365},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	st := sampleState()
	data, err := Encode(st)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 1`)
	assert.Contains(t, string(data), `"type": "BUY"`)

	got, migrated, err := Decode(data)
	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Equal(t, st, got)
}

func TestDecodeMigratesLegacyBlob(t *testing.T) {
	t.Parallel()

	legacy := `{
		"holdings": [
			{"id": "", "symbol": "AAPL", "quantity": 5, "buyPrice": 10},
			{"id": "gone", "symbol": "MSFT", "quantity": 0, "buyPrice": 300}
		],
		"trades": [{"symbol": "AAPL", "quantity": 5, "entryPrice": 10}],
		"equityHistory": [
			{"date": "2024-06-02T00:00:00Z", "value": 2},
			{"date": "2024-06-01T00:00:00Z", "value": 1}
		],
		"watchlist": ["TSLA", "TSLA", "AMD"]
	}`

	st, migrated, err := Decode([]byte(legacy))
	require.NoError(t, err)
	assert.True(t, migrated)

	require.Len(t, st.Holdings, 1)
	assert.NotEmpty(t, st.Holdings[0].ID)
	assert.Equal(t, 10.0, st.Holdings[0].CurrentPrice)

	require.Len(t, st.Trades, 1)
	assert.NotEmpty(t, st.Trades[0].ID)
	assert.Equal(t, ledger.Buy, st.Trades[0].Side)
	assert.Equal(t, ledger.Open, st.Trades[0].Status)

	assert.Equal(t, 1.0, st.EquityHistory[0].Value)
	assert.Equal(t, []string{"TSLA", "AMD"}, st.Watchlist)
	assert.Equal(t, ledger.DefaultEquityWindow, st.Settings.EquityWindow)
}

func TestDecodeRepairsLegacyClosedTrades(t *testing.T) {
	t.Parallel()

	legacy := `{
		"trades": [
			{"id": "a", "symbol": "AAPL", "type": "BUY", "quantity": 10, "entryPrice": 100,
			 "exitPrice": 110, "status": "closed", "createdAt": "2024-06-01T00:00:00Z"},
			{"id": "b", "symbol": "MSFT", "type": "BUY", "quantity": 2, "entryPrice": 300,
			 "status": "closed", "pnl": 40, "closedAt": "2024-06-02T00:00:00Z"},
			{"id": "c", "symbol": "NVDA", "type": "BUY", "quantity": 1, "entryPrice": 50,
			 "exitPrice": 40, "status": "closed", "pnl": -12, "closedAt": "2024-06-02T00:00:00Z"}
		]
	}`

	st, migrated, err := Decode([]byte(legacy))
	require.NoError(t, err)
	assert.True(t, migrated)
	require.Len(t, st.Trades, 3)

	computed := st.Trades[0]
	assert.Equal(t, ledger.Closed, computed.Status)
	assert.InDelta(t, 100.0, computed.PnL, 1e-9)
	require.NotNil(t, computed.ClosedAt)
	assert.True(t, computed.ClosedAt.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))

	reopened := st.Trades[1]
	assert.Equal(t, ledger.Open, reopened.Status)
	assert.Nil(t, reopened.ClosedAt)
	assert.Zero(t, reopened.PnL)

	// A recorded PnL is kept.
	assert.Equal(t, -12.0, st.Trades[2].PnL)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, _, err := Decode([]byte(`{"version": 99}`))
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))

	_, _, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestBackends(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		open func(t *testing.T) Backend
	}{
		{"file", func(t *testing.T) Backend {
			return NewFile(filepath.Join(t.TempDir(), "nested", "folio.json"))
		}},
		{"sqlite", func(t *testing.T) Backend {
			b, err := NewSQLite(filepath.Join(t.TempDir(), "folio.db"), "")
			require.NoError(t, err)
			return b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.open(t)
			defer b.Close()

			_, found, err := b.Load(ctx)
			require.NoError(t, err)
			assert.False(t, found)

			st := sampleState()
			require.NoError(t, b.Save(ctx, st))

			// overwrite
			st.Watchlist = append(st.Watchlist, "AMD")
			require.NoError(t, b.Save(ctx, st))

			got, found, err := b.Load(ctx)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, st, got)
		})
	}
}

func TestFileBackendWritesMigratedBlobBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"holdings":[{"symbol":"AAPL","quantity":1,"buyPrice":2}]}`), 0644))

	b := NewFile(path)
	_, found, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, found)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 1`)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSQLiteUpdatedAt(t *testing.T) {
	b, err := NewSQLite(filepath.Join(t.TempDir(), "folio.db"), "k")
	require.NoError(t, err)
	defer b.Close()
	b.now = func() time.Time { return t0 }

	ctx := context.Background()
	require.NoError(t, b.Save(ctx, sampleState()))

	at, err := b.UpdatedAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.Equal(t0))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := Open(ctx, config.StorageConfig{Type: "json", Path: filepath.Join(dir, "a.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)

	b, err = Open(ctx, config.StorageConfig{Type: "sqlite", Path: filepath.Join(dir, "a.db"), Key: "k"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteBackend{}, b)
	require.NoError(t, b.Close())

	_, err = Open(ctx, config.StorageConfig{Type: "redis"})
	assert.Error(t, err)
}

type failingBackend struct{ Backend }

func (failingBackend) Save(context.Context, ledger.State) error { return errors.New("disk full") }

func TestAutoSaver(t *testing.T) {
	ctx := context.Background()
	b := NewFile(filepath.Join(t.TempDir(), "folio.json"))

	store := ledger.New()
	require.NoError(t, LoadInto(ctx, b, store, ledger.Settings{Currency: "EUR", EquityWindow: 30}))
	assert.Equal(t, "EUR", store.Settings().Currency)

	saver := NewAutoSaver(b, logging.Discard())
	store.SetChangeListener(saver)

	h, ok := store.AddHolding(ledger.HoldingSpec{Symbol: "AAPL", Quantity: 10, BuyPrice: 100})
	require.True(t, ok)
	store.AddToWatchlist("NVDA")
	assert.NoError(t, saver.Err())
	assert.Equal(t, 2, saver.Saves())

	reloaded := ledger.New()
	require.NoError(t, LoadInto(ctx, b, reloaded, ledger.Settings{}))
	got, ok := reloaded.Holding(h.ID)
	require.True(t, ok)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, []string{"NVDA"}, reloaded.Watchlist())

	bad := NewAutoSaver(failingBackend{}, logging.Discard())
	store.SetChangeListener(bad)
	store.AddToWatchlist("AMD")
	assert.EqualError(t, bad.Err(), "disk full")
	assert.True(t, store.Watching("AMD"))
}
