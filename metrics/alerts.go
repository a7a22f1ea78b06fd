package metrics

import "github.com/rustyeddy/folio/ledger"

// AlertKind says which level a holding crossed.
type AlertKind string

const (
	StopLoss   AlertKind = "StopLoss"
	TakeProfit AlertKind = "TakeProfit"
)

// Alert flags a holding whose price reached its stop or target.
type Alert struct {
	HoldingID string
	Symbol    string
	Kind      AlertKind
	Price     float64
	Level     float64
}

// Alerts lists holdings at or through their stop-loss or take-profit, in
// holding order. The stop is checked first.
func Alerts(hs []ledger.Holding) []Alert {
	var out []Alert
	for _, h := range hs {
		switch {
		case h.StopHit():
			out = append(out, Alert{h.ID, h.Symbol, StopLoss, h.CurrentPrice, *h.StopLoss})
		case h.TargetHit():
			out = append(out, Alert{h.ID, h.Symbol, TakeProfit, h.CurrentPrice, *h.TakeProfit})
		}
	}
	return out
}
