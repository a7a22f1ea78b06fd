package metrics

import "github.com/rustyeddy/folio/ledger"

// Exposure is the amount that would be given back if every stop-loss
// filled at its level, relative to the current portfolio value.
type Exposure struct {
	AtRisk    float64
	Percent   float64
	Unguarded int // holdings without a stop-loss
}

// StopRisk is what the holding loses, from the current price, if its stop
// fills. Zero when there is no stop or the stop is at or above the price.
func StopRisk(h ledger.Holding) float64 {
	if h.StopLoss == nil || *h.StopLoss >= h.CurrentPrice {
		return 0
	}
	return (h.CurrentPrice - *h.StopLoss) * h.Quantity
}

// RiskReward is the distance to the take-profit over the distance to the
// stop-loss, from the current price. Zero unless both levels bracket the
// price.
func RiskReward(h ledger.Holding) float64 {
	if h.StopLoss == nil || h.TakeProfit == nil {
		return 0
	}
	risk := h.CurrentPrice - *h.StopLoss
	reward := *h.TakeProfit - h.CurrentPrice
	if risk <= 0 || reward <= 0 {
		return 0
	}
	return reward / risk
}

// OpenExposure sums StopRisk over the holdings.
func OpenExposure(hs []ledger.Holding) Exposure {
	var e Exposure
	for _, h := range hs {
		if h.StopLoss == nil {
			e.Unguarded++
			continue
		}
		e.AtRisk += StopRisk(h)
	}
	if v := ledger.TotalValue(hs); v > 0 {
		e.Percent = e.AtRisk / v * 100
	}
	return e
}
