package metrics

import (
	"sort"

	"github.com/rustyeddy/folio/ledger"
)

// InstrumentPerformance is the realized result of one symbol.
type InstrumentPerformance struct {
	Symbol string
	PnL    float64
	Trades int
}

// RankInstruments groups closed trades by symbol and sorts by summed PnL,
// best first. Ties keep symbol order.
func RankInstruments(trades []ledger.Trade) []InstrumentPerformance {
	index := map[string]int{}
	var out []InstrumentPerformance
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		i, ok := index[t.Symbol]
		if !ok {
			i = len(out)
			index[t.Symbol] = i
			out = append(out, InstrumentPerformance{Symbol: t.Symbol})
		}
		out[i].PnL += t.PnL
		out[i].Trades++
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PnL != out[j].PnL {
			return out[i].PnL > out[j].PnL
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// Best returns up to n top-ranked instruments. A negative n returns none.
func Best(trades []ledger.Trade, n int) []InstrumentPerformance {
	r := RankInstruments(trades)
	n = max(n, 0)
	if n < len(r) {
		r = r[:n]
	}
	return r
}

// Worst returns up to n bottom-ranked instruments, worst first. A negative
// n returns none.
func Worst(trades []ledger.Trade, n int) []InstrumentPerformance {
	r := RankInstruments(trades)
	n = max(n, 0)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	if n < len(r) {
		r = r[:n]
	}
	return r
}
