package ledger

import "time"

// HoldingSpec describes a new position.
type HoldingSpec struct {
	Symbol       string
	Quantity     float64
	BuyPrice     float64
	CurrentPrice float64 // defaults to BuyPrice
	BuyDate      time.Time

	StopLoss     *float64
	TakeProfit   *float64
	TrailingStop bool
	TrailPercent float64
}

// HoldingPatch lists the fields UpdateHolding merges. Nil fields are left
// alone; the Clear flags drop an optional price.
type HoldingPatch struct {
	Symbol       *string
	Quantity     *float64
	BuyPrice     *float64
	CurrentPrice *float64
	BuyDate      *time.Time

	StopLoss        *float64
	ClearStopLoss   bool
	TakeProfit      *float64
	ClearTakeProfit bool

	TrailingStop *bool
	TrailPercent *float64
}

func (p HoldingPatch) empty() bool {
	return p.Symbol == nil && p.Quantity == nil && p.BuyPrice == nil &&
		p.CurrentPrice == nil && p.BuyDate == nil &&
		p.StopLoss == nil && !p.ClearStopLoss &&
		p.TakeProfit == nil && !p.ClearTakeProfit &&
		p.TrailingStop == nil && p.TrailPercent == nil
}

// Holdings returns the holdings in display order.
func (s *Store) Holdings() []Holding {
	return s.State().Holdings
}

// Holding returns the holding with the given id.
func (s *Store) Holding(holdingID string) (Holding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.holdingIndexLocked(holdingID)
	if i < 0 {
		return Holding{}, false
	}
	return s.st.Holdings[i].clone(), true
}

// AddHolding appends a holding with a fresh id. It reports false, and adds
// nothing, when the quantity is not positive.
func (s *Store) AddHolding(spec HoldingSpec) (Holding, bool) {
	var h Holding
	ok := false
	s.mutate(func() bool {
		if spec.Quantity <= 0 {
			return false
		}
		h = s.newHoldingLocked(spec)
		s.st.Holdings = append(s.st.Holdings, h)
		ok = true
		return true
	})
	return h.clone(), ok
}

// OpenPosition adds a holding together with an open BUY trade for the same
// quantity and price, and links the two.
func (s *Store) OpenPosition(spec HoldingSpec) (Holding, Trade, bool) {
	var (
		h  Holding
		tr Trade
		ok bool
	)
	s.mutate(func() bool {
		if spec.Quantity <= 0 {
			return false
		}
		tr = Trade{
			ID:         s.ids.New(),
			Symbol:     spec.Symbol,
			Side:       Buy,
			Quantity:   spec.Quantity,
			EntryPrice: spec.BuyPrice,
			Status:     Open,
			CreatedAt:  s.now(),
		}
		h = s.newHoldingLocked(spec)
		h.TradeID = tr.ID
		s.st.Trades = append(s.st.Trades, tr)
		s.st.Holdings = append(s.st.Holdings, h)
		ok = true
		return true
	})
	return h.clone(), tr.clone(), ok
}

func (s *Store) newHoldingLocked(spec HoldingSpec) Holding {
	h := Holding{
		ID:           s.ids.New(),
		Symbol:       spec.Symbol,
		Quantity:     spec.Quantity,
		BuyPrice:     spec.BuyPrice,
		CurrentPrice: spec.CurrentPrice,
		BuyDate:      spec.BuyDate,
		StopLoss:     clonePrice(spec.StopLoss),
		TakeProfit:   clonePrice(spec.TakeProfit),
		TrailingStop: spec.TrailingStop,
		TrailPercent: spec.TrailPercent,
	}
	if h.CurrentPrice == 0 {
		h.CurrentPrice = h.BuyPrice
	}
	if h.BuyDate.IsZero() {
		h.BuyDate = s.now()
	}
	if h.TrailingStop {
		ratchet(&h, h.CurrentPrice)
	}
	return h
}

// UpdateHolding merges patch into the holding. A new current price also
// ratchets an enabled trailing stop; a quantity of zero or less removes the
// holding.
func (s *Store) UpdateHolding(holdingID string, patch HoldingPatch) Result {
	res := NotFound
	s.mutate(func() bool {
		i := s.holdingIndexLocked(holdingID)
		if i < 0 {
			return false
		}
		if patch.empty() {
			res = Unchanged
			return false
		}

		h := &s.st.Holdings[i]
		if patch.Symbol != nil {
			h.Symbol = *patch.Symbol
		}
		if patch.Quantity != nil {
			h.Quantity = *patch.Quantity
		}
		if patch.BuyPrice != nil {
			h.BuyPrice = *patch.BuyPrice
		}
		if patch.BuyDate != nil {
			h.BuyDate = *patch.BuyDate
		}
		if patch.ClearStopLoss {
			h.StopLoss = nil
		}
		if patch.StopLoss != nil {
			h.StopLoss = Price(*patch.StopLoss)
		}
		if patch.ClearTakeProfit {
			h.TakeProfit = nil
		}
		if patch.TakeProfit != nil {
			h.TakeProfit = Price(*patch.TakeProfit)
		}
		if patch.TrailingStop != nil {
			h.TrailingStop = *patch.TrailingStop
		}
		if patch.TrailPercent != nil {
			h.TrailPercent = *patch.TrailPercent
		}
		if patch.CurrentPrice != nil {
			h.CurrentPrice = *patch.CurrentPrice
			if h.TrailingStop {
				ratchet(h, h.CurrentPrice)
			}
		}

		if h.Quantity <= 0 {
			s.removeHoldingLocked(i)
		}
		res = Updated
		return true
	})
	return res
}

// UpdatePrice folds a quote into every holding of symbol and returns how
// many holdings were repriced.
func (s *Store) UpdatePrice(symbol string, price float64) int {
	n := 0
	s.mutate(func() bool {
		for i := range s.st.Holdings {
			h := &s.st.Holdings[i]
			if h.Symbol != symbol {
				continue
			}
			h.CurrentPrice = price
			if h.TrailingStop {
				ratchet(h, price)
			}
			n++
		}
		return n > 0
	})
	return n
}

// RemoveHolding deletes the holding.
func (s *Store) RemoveHolding(holdingID string) Result {
	res := NotFound
	s.mutate(func() bool {
		i := s.holdingIndexLocked(holdingID)
		if i < 0 {
			return false
		}
		s.removeHoldingLocked(i)
		res = Updated
		return true
	})
	return res
}

func (s *Store) removeHoldingLocked(i int) {
	s.st.Holdings = append(s.st.Holdings[:i], s.st.Holdings[i+1:]...)
}

// ReorderHoldings moves the holding at index from to index to. Other
// holdings keep their relative order.
func (s *Store) ReorderHoldings(from, to int) Result {
	res := NotFound
	s.mutate(func() bool {
		n := len(s.st.Holdings)
		if from < 0 || from >= n || to < 0 || to >= n {
			return false
		}
		if from == to {
			res = Unchanged
			return false
		}
		h := s.st.Holdings[from]
		s.st.Holdings = append(s.st.Holdings[:from], s.st.Holdings[from+1:]...)
		s.st.Holdings = append(s.st.Holdings[:to], append([]Holding{h}, s.st.Holdings[to:]...)...)
		res = Updated
		return true
	})
	return res
}

// SellHolding sells quantity units at price. A partial sell decrements the
// holding and records a closed SELL trade costed at the average buy price.
// Selling the whole quantity removes the holding and closes its paired BUY
// trade at the holding's buy price, or records a closed SELL trade when
// there is none.
func (s *Store) SellHolding(holdingID string, quantity, price float64) (Trade, Result) {
	var tr Trade
	res := NotFound
	s.mutate(func() bool {
		i := s.holdingIndexLocked(holdingID)
		if i < 0 {
			return false
		}
		if quantity <= 0 {
			res = Unchanged
			return false
		}

		h := &s.st.Holdings[i]
		at := s.now()
		paired := s.openTradeIndexLocked(h.TradeID)

		if quantity >= h.Quantity {
			if paired >= 0 {
				// Both sell paths cost the position at the holding's buy
				// price, which UpdateHolding may have changed.
				t := &s.st.Trades[paired]
				t.Quantity = h.Quantity
				t.EntryPrice = h.BuyPrice
				closeTrade(t, price, at)
				tr = t.clone()
			} else {
				tr = s.appendSellLocked(h.Symbol, h.Quantity, h.BuyPrice, price, at)
			}
			s.removeHoldingLocked(i)
			res = Updated
			return true
		}

		tr = s.appendSellLocked(h.Symbol, quantity, h.BuyPrice, price, at)
		h.Quantity -= quantity
		h.CurrentPrice = price
		if paired >= 0 {
			s.st.Trades[paired].Quantity -= quantity
		}
		res = Updated
		return true
	})
	return tr, res
}

func (s *Store) appendSellLocked(symbol string, qty, entry, exit float64, at time.Time) Trade {
	t := Trade{
		ID:         s.ids.New(),
		Symbol:     symbol,
		Side:       Sell,
		Quantity:   qty,
		EntryPrice: entry,
		Status:     Open,
		CreatedAt:  at,
	}
	closeTrade(&t, exit, at)
	s.st.Trades = append(s.st.Trades, t)
	return t.clone()
}
