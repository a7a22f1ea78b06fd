package ledger

// BulkUpdateStopLoss sets every holding with a known buy price to a stop
// percent below its buy price. It returns the number of holdings changed.
func (s *Store) BulkUpdateStopLoss(percent float64) int {
	n := 0
	s.mutate(func() bool {
		for i := range s.st.Holdings {
			h := &s.st.Holdings[i]
			if h.BuyPrice == 0 {
				continue
			}
			h.StopLoss = Price(h.BuyPrice * (1 - percent/100))
			n++
		}
		return n > 0
	})
	return n
}

// EnableTrailingStop turns on a trailing stop trailPercent below the price
// and ratchets the stop from the current price straight away.
func (s *Store) EnableTrailingStop(holdingID string, trailPercent float64) Result {
	res := NotFound
	s.mutate(func() bool {
		i := s.holdingIndexLocked(holdingID)
		if i < 0 {
			return false
		}
		h := &s.st.Holdings[i]
		h.TrailingStop = true
		h.TrailPercent = trailPercent
		ratchet(h, h.CurrentPrice)
		res = Updated
		return true
	})
	return res
}

// DisableTrailingStop turns the trailing stop off, keeping the last stop.
func (s *Store) DisableTrailingStop(holdingID string) Result {
	res := NotFound
	s.mutate(func() bool {
		i := s.holdingIndexLocked(holdingID)
		if i < 0 {
			return false
		}
		h := &s.st.Holdings[i]
		if !h.TrailingStop {
			res = Unchanged
			return false
		}
		h.TrailingStop = false
		res = Updated
		return true
	})
	return res
}

// UpdateTrailingStop ratchets the holding's stop from newPrice. The stop
// only moves up; a holding without a trailing stop is left alone.
func (s *Store) UpdateTrailingStop(holdingID string, newPrice float64) Result {
	res := NotFound
	s.mutate(func() bool {
		i := s.holdingIndexLocked(holdingID)
		if i < 0 {
			return false
		}
		h := &s.st.Holdings[i]
		if !h.TrailingStop || !ratchet(h, newPrice) {
			res = Unchanged
			return false
		}
		res = Updated
		return true
	})
	return res
}

// ratchet raises h's stop to trailPercent below price if that is higher
// than the current stop. It never lowers a stop.
func ratchet(h *Holding, price float64) bool {
	if price <= 0 {
		return false
	}
	stop := price * (1 - h.TrailPercent/100)
	if h.StopLoss != nil && stop <= *h.StopLoss {
		return false
	}
	h.StopLoss = Price(stop)
	return true
}

// StopHit reports whether the current price is at or below the stop-loss.
func (h Holding) StopHit() bool {
	if h.StopLoss == nil || h.CurrentPrice <= 0 {
		return false
	}
	return h.CurrentPrice <= *h.StopLoss
}

// TargetHit reports whether the current price is at or above the
// take-profit.
func (h Holding) TargetHit() bool {
	if h.TakeProfit == nil || h.CurrentPrice <= 0 {
		return false
	}
	return h.CurrentPrice >= *h.TakeProfit
}
