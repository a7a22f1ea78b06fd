// Package metrics derives portfolio analytics from a ledger.State. Every
// function is pure, accepts empty input and never returns NaN.
package metrics

import (
	"sort"

	"github.com/rustyeddy/folio/ledger"
)

// Valuation is the mark-to-market view of the open holdings.
type Valuation struct {
	TotalValue           float64
	TotalCost            float64
	UnrealizedPnL        float64
	UnrealizedPnLPercent float64
}

// Value values the holdings. The percentage is 0 when there is no cost.
func Value(hs []ledger.Holding) Valuation {
	v := Valuation{
		TotalValue: ledger.TotalValue(hs),
		TotalCost:  ledger.TotalCost(hs),
	}
	v.UnrealizedPnL = v.TotalValue - v.TotalCost
	if v.TotalCost != 0 {
		v.UnrealizedPnLPercent = v.UnrealizedPnL / v.TotalCost * 100
	}
	return v
}

// Position aggregates every holding of one symbol.
type Position struct {
	Symbol       string
	Holdings     int
	Quantity     float64
	AvgBuyPrice  float64
	CurrentPrice float64
	Value        float64
	Cost         float64
	PnL          float64
}

// Positions groups holdings by symbol in first-seen order, with a
// quantity-weighted average buy price.
func Positions(hs []ledger.Holding) []Position {
	index := map[string]int{}
	var out []Position
	for _, h := range hs {
		i, ok := index[h.Symbol]
		if !ok {
			i = len(out)
			index[h.Symbol] = i
			out = append(out, Position{Symbol: h.Symbol})
		}
		p := &out[i]
		p.Holdings++
		p.Quantity += h.Quantity
		p.Value += h.Value()
		p.Cost += h.Cost()
		if h.CurrentPrice > 0 {
			p.CurrentPrice = h.CurrentPrice
		}
	}
	for i := range out {
		p := &out[i]
		if p.Quantity > 0 {
			p.AvgBuyPrice = p.Cost / p.Quantity
		}
		p.PnL = p.Value - p.Cost
	}
	return out
}

// Allocation is one symbol's share of total value, in percent.
type Allocation struct {
	Symbol  string
	Value   float64
	Percent float64
}

// Allocations returns each symbol's share of total value, largest first.
func Allocations(hs []ledger.Holding) []Allocation {
	total := ledger.TotalValue(hs)
	var out []Allocation
	for _, p := range Positions(hs) {
		a := Allocation{Symbol: p.Symbol, Value: p.Value}
		if total != 0 {
			a.Percent = p.Value / total * 100
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}
