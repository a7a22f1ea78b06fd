package ledger

import (
	"sync"
	"time"

	"github.com/rustyeddy/folio/pkg/id"
)

// ChangeListener is notified with the new state after every mutation. It is
// called after the store lock is released, so it may read from the store.
type ChangeListener interface {
	OnLedgerChange(State)
}

// ChangeListenerFunc adapts a function to ChangeListener.
type ChangeListenerFunc func(State)

func (f ChangeListenerFunc) OnLedgerChange(s State) { f(s) }

// Store is the single source of truth for holdings, trades, equity history
// and the watchlist. Lookups by unknown id are absorbed as no-ops and
// reported through Result.
type Store struct {
	mu       sync.Mutex
	st       State
	now      func() time.Time
	ids      *id.Generator
	listener ChangeListener
}

// New returns an empty store using the wall clock.
func New() *Store {
	s := &Store{
		st: State{
			Holdings:      []Holding{},
			Trades:        []Trade{},
			EquityHistory: []Snapshot{},
			Watchlist:     []string{},
			Settings:      Settings{EquityWindow: DefaultEquityWindow},
		},
	}
	s.SetClock(nil)
	return s
}

// SetClock replaces the time source used for ids, trade timestamps and
// equity snapshots. A nil clock restores time.Now.
func (s *Store) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.ids = id.NewGenerator(now)
}

// SetChangeListener sets the listener notified after each mutation.
func (s *Store) SetChangeListener(l ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

// Restore replaces the whole state, typically with a freshly loaded blob.
// The listener is not notified.
func (s *Store) Restore(st State) {
	st = st.Clone()
	if st.Settings.EquityWindow <= 0 {
		st.Settings.EquityWindow = DefaultEquityWindow
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = st
	s.pruneEquityLocked()
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Clone()
}

// Settings returns the persisted user settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Settings
}

// SetSettings replaces the user settings. A smaller equity window prunes
// the history immediately.
func (s *Store) SetSettings(set Settings) {
	if set.EquityWindow <= 0 {
		set.EquityWindow = DefaultEquityWindow
	}
	s.mutate(func() bool {
		s.st.Settings = set
		s.pruneEquityLocked()
		return true
	})
}

// mutate runs fn under the lock and, when fn reports a change, hands a copy
// of the new state to the listener once the lock is released.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	changed := fn()

	var (
		l  ChangeListener
		st State
	)
	if changed && s.listener != nil {
		l = s.listener
		st = s.st.Clone()
	}
	s.mu.Unlock()

	if l != nil {
		l.OnLedgerChange(st)
	}
}

func (s *Store) holdingIndexLocked(holdingID string) int {
	for i := range s.st.Holdings {
		if s.st.Holdings[i].ID == holdingID {
			return i
		}
	}
	return -1
}

func (s *Store) tradeIndexLocked(tradeID string) int {
	for i := range s.st.Trades {
		if s.st.Trades[i].ID == tradeID {
			return i
		}
	}
	return -1
}
