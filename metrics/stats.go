package metrics

import (
	"encoding/json"
	"math"

	"github.com/rustyeddy/folio/ledger"
)

// Stats summarises closed trades. AvgLoss, GrossLoss and LargestLoss are
// reported as positive magnitudes.
type Stats struct {
	Total  int
	Wins   int
	Losses int

	WinRate float64 // percent

	GrossProfit float64
	GrossLoss   float64
	AvgWin      float64
	AvgLoss     float64
	LargestWin  float64
	LargestLoss float64

	// ProfitFactor is GrossProfit/GrossLoss, +Inf with wins and no losses,
	// and 0 without wins.
	ProfitFactor float64
}

// TradeStats computes Stats over the closed trades. Trades with zero PnL
// count toward Total but are neither wins nor losses.
func TradeStats(trades []ledger.Trade) Stats {
	var s Stats
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		s.Total++
		switch {
		case t.PnL > 0:
			s.Wins++
			s.GrossProfit += t.PnL
			if t.PnL > s.LargestWin {
				s.LargestWin = t.PnL
			}
		case t.PnL < 0:
			loss := -t.PnL
			s.Losses++
			s.GrossLoss += loss
			if loss > s.LargestLoss {
				s.LargestLoss = loss
			}
		}
	}

	if s.Total > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Total) * 100
	}
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	s.ProfitFactor = ProfitFactor(s.GrossProfit, s.GrossLoss)
	return s
}

// ProfitFactor divides gross profit by gross loss (both non-negative).
func ProfitFactor(grossProfit, grossLoss float64) float64 {
	switch {
	case grossProfit <= 0:
		return 0
	case grossLoss <= 0:
		return math.Inf(1)
	}
	return grossProfit / grossLoss
}

// MarshalJSON writes an infinite ProfitFactor as null, since JSON has no
// infinity and 0 already means "no winning trades".
func (s Stats) MarshalJSON() ([]byte, error) {
	type plain Stats
	out := struct {
		plain
		ProfitFactor *float64
	}{plain: plain(s)}
	if !math.IsInf(s.ProfitFactor, 0) && !math.IsNaN(s.ProfitFactor) {
		pf := s.ProfitFactor
		out.ProfitFactor = &pf
	}
	return json.Marshal(out)
}
