package ledger

// TotalValue is the sum of quantity times current price over hs.
// Holdings of the same symbol are simply summed.
func TotalValue(hs []Holding) float64 {
	var v float64
	for _, h := range hs {
		v += h.Value()
	}
	return v
}

// TotalCost is the sum of quantity times buy price over hs.
func TotalCost(hs []Holding) float64 {
	var c float64
	for _, h := range hs {
		c += h.Cost()
	}
	return c
}

// EquityHistory returns the retained snapshots, oldest first.
func (s *Store) EquityHistory() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Snapshot{}, s.st.EquityHistory...)
}

// TakeEquitySnapshot samples the current total value and appends it to the
// history, evicting the oldest samples beyond the retention window.
func (s *Store) TakeEquitySnapshot() Snapshot {
	var snap Snapshot
	s.mutate(func() bool {
		snap = Snapshot{
			Time:  s.now(),
			Value: TotalValue(s.st.Holdings),
		}
		// History is append-only in time order; never stamp a sample
		// earlier than the last one.
		if n := len(s.st.EquityHistory); n > 0 {
			if last := s.st.EquityHistory[n-1].Time; snap.Time.Before(last) {
				snap.Time = last
			}
		}
		s.st.EquityHistory = append(s.st.EquityHistory, snap)
		s.pruneEquityLocked()
		return true
	})
	return snap
}

func (s *Store) pruneEquityLocked() {
	window := s.st.Settings.EquityWindow
	if window <= 0 {
		window = DefaultEquityWindow
	}
	if extra := len(s.st.EquityHistory) - window; extra > 0 {
		s.st.EquityHistory = append([]Snapshot{}, s.st.EquityHistory[extra:]...)
	}
}
