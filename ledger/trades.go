package ledger

import "time"

// TradeSpec describes a trade to record. A trade with an ExitPrice is
// recorded already closed.
type TradeSpec struct {
	Symbol     string
	Side       Side
	Quantity   float64
	EntryPrice float64
	ExitPrice  *float64
}

// TradePatch lists the fields UpdateTrade merges into an open trade.
type TradePatch struct {
	Symbol     *string
	Side       *Side
	Quantity   *float64
	EntryPrice *float64
}

func (p TradePatch) empty() bool {
	return p.Symbol == nil && p.Side == nil && p.Quantity == nil && p.EntryPrice == nil
}

// Trades returns the trade log in insertion order.
func (s *Store) Trades() []Trade {
	return s.State().Trades
}

// Trade returns the trade with the given id.
func (s *Store) Trade(tradeID string) (Trade, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.tradeIndexLocked(tradeID)
	if i < 0 {
		return Trade{}, false
	}
	return s.st.Trades[i].clone(), true
}

// AddTrade appends a trade with a fresh id and creation time. It does not
// check that a matching holding exists.
func (s *Store) AddTrade(spec TradeSpec) Trade {
	var t Trade
	s.mutate(func() bool {
		side := spec.Side
		if side == "" {
			side = Buy
		}
		now := s.now()
		t = Trade{
			ID:         s.ids.New(),
			Symbol:     spec.Symbol,
			Side:       side,
			Quantity:   spec.Quantity,
			EntryPrice: spec.EntryPrice,
			Status:     Open,
			CreatedAt:  now,
		}
		if spec.ExitPrice != nil {
			closeTrade(&t, *spec.ExitPrice, now)
		}
		s.st.Trades = append(s.st.Trades, t)
		return true
	})
	return t.clone()
}

// UpdateTrade merges patch into an open trade. Closed trades are immutable
// and report Unchanged; correct them by removing and re-adding.
func (s *Store) UpdateTrade(tradeID string, patch TradePatch) Result {
	res := NotFound
	s.mutate(func() bool {
		i := s.tradeIndexLocked(tradeID)
		if i < 0 {
			return false
		}
		t := &s.st.Trades[i]
		if t.IsClosed() || patch.empty() {
			res = Unchanged
			return false
		}
		if patch.Symbol != nil {
			t.Symbol = *patch.Symbol
		}
		if patch.Side != nil {
			t.Side = *patch.Side
		}
		if patch.Quantity != nil {
			t.Quantity = *patch.Quantity
		}
		if patch.EntryPrice != nil {
			t.EntryPrice = *patch.EntryPrice
		}
		res = Updated
		return true
	})
	return res
}

// CloseTrade closes an open trade at exitPrice and freezes its PnL. A trade
// closes exactly once; closing it again reports Unchanged.
func (s *Store) CloseTrade(tradeID string, exitPrice float64) Result {
	res := NotFound
	s.mutate(func() bool {
		i := s.tradeIndexLocked(tradeID)
		if i < 0 {
			return false
		}
		t := &s.st.Trades[i]
		if t.IsClosed() {
			res = Unchanged
			return false
		}
		closeTrade(t, exitPrice, s.now())
		res = Updated
		return true
	})
	return res
}

// RemoveTrade deletes the trade.
func (s *Store) RemoveTrade(tradeID string) Result {
	res := NotFound
	s.mutate(func() bool {
		i := s.tradeIndexLocked(tradeID)
		if i < 0 {
			return false
		}
		s.st.Trades = append(s.st.Trades[:i], s.st.Trades[i+1:]...)
		res = Updated
		return true
	})
	return res
}

// closeTrade applies the open to closed transition. Positive PnL is profit.
func closeTrade(t *Trade, exit float64, at time.Time) {
	t.ExitPrice = Price(exit)
	t.ClosedAt = &at
	t.PnL = (exit - t.EntryPrice) * t.Quantity
	t.Status = Closed
}
