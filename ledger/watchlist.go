package ledger

import "slices"

// Watchlist returns the watched symbols in insertion order.
func (s *Store) Watchlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.st.Watchlist...)
}

// Watching reports whether symbol is on the watchlist.
func (s *Store) Watching(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.st.Watchlist, symbol)
}

// AddToWatchlist adds symbol. Adding a symbol already present is a no-op.
func (s *Store) AddToWatchlist(symbol string) Result {
	res := Unchanged
	s.mutate(func() bool {
		if slices.Contains(s.st.Watchlist, symbol) {
			return false
		}
		s.st.Watchlist = append(s.st.Watchlist, symbol)
		res = Updated
		return true
	})
	return res
}

// RemoveFromWatchlist removes symbol if present.
func (s *Store) RemoveFromWatchlist(symbol string) Result {
	res := NotFound
	s.mutate(func() bool {
		i := slices.Index(s.st.Watchlist, symbol)
		if i < 0 {
			return false
		}
		s.st.Watchlist = slices.Delete(s.st.Watchlist, i, i+1)
		res = Updated
		return true
	})
	return res
}
