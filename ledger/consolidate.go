package ledger

import "slices"

// Consolidate collapses holdings of the same symbol into one entry, at the
// position of the first one, with summed quantity and weighted-average buy
// price. Stops and targets of the first holding are kept.
//
// Open BUY trades paired with the merged lots are folded into one trade
// carrying the merged quantity at the average buy price, so a later sell
// realizes P/L against the consolidated cost basis. It returns how many
// holdings were merged away.
func (s *Store) Consolidate() int {
	merged := 0
	s.mutate(func() bool {
		type acc struct {
			idx      int
			knownQty float64
			knownCst float64
		}
		bySymbol := map[string]*acc{}
		out := make([]Holding, 0, len(s.st.Holdings))
		folded := map[string]bool{}

		for _, h := range s.st.Holdings {
			a, ok := bySymbol[h.Symbol]
			if !ok {
				a = &acc{idx: len(out)}
				bySymbol[h.Symbol] = a
				if s.openTradeIndexLocked(h.TradeID) < 0 {
					h.TradeID = ""
				}
				out = append(out, h)
			} else {
				first := &out[a.idx]
				first.Quantity += h.Quantity
				if h.CurrentPrice > 0 {
					first.CurrentPrice = h.CurrentPrice
				}
				if h.BuyDate.Before(first.BuyDate) {
					first.BuyDate = h.BuyDate
				}
				if s.openTradeIndexLocked(h.TradeID) >= 0 {
					if first.TradeID == "" {
						first.TradeID = h.TradeID
					} else {
						folded[h.TradeID] = true
					}
				}
				merged++
			}
			if h.BuyPrice > 0 {
				a.knownQty += h.Quantity
				a.knownCst += h.Quantity * h.BuyPrice
			}
		}
		if merged == 0 {
			return false
		}

		if len(folded) > 0 {
			s.st.Trades = slices.DeleteFunc(s.st.Trades, func(t Trade) bool {
				return folded[t.ID]
			})
		}
		for _, a := range bySymbol {
			h := &out[a.idx]
			if a.knownQty > 0 {
				h.BuyPrice = a.knownCst / a.knownQty
			}
			if j := s.openTradeIndexLocked(h.TradeID); j >= 0 {
				s.st.Trades[j].Quantity = h.Quantity
				s.st.Trades[j].EntryPrice = h.BuyPrice
			}
		}
		s.st.Holdings = out
		return true
	})
	return merged
}

// openTradeIndexLocked returns the index of the open trade with the given
// id, or -1.
func (s *Store) openTradeIndexLocked(tradeID string) int {
	if tradeID == "" {
		return -1
	}
	j := s.tradeIndexLocked(tradeID)
	if j < 0 || s.st.Trades[j].IsClosed() {
		return -1
	}
	return j
}
