package metrics

import (
	"time"

	"github.com/rustyeddy/folio/ledger"
)

// Summary bundles every metric for one read of the ledger.
type Summary struct {
	AsOf time.Time
	Valuation

	RealizedPnL float64
	TotalPnL    float64
	DailyPnL    float64
	WeeklyPnL   float64
	MonthlyPnL  float64

	MaxDrawdown float64
	Drawdowns   []DrawdownPoint

	Stats       Stats
	Instruments []InstrumentPerformance
	Positions   []Position
	Allocations []Allocation
	Alerts      []Alert
	Exposure    Exposure

	OpenHoldings int
	OpenTrades   int
}

// Summarize computes a Summary of st as of now.
func Summarize(st ledger.State, now time.Time) Summary {
	s := Summary{
		AsOf:        now,
		Valuation:   Value(st.Holdings),
		RealizedPnL: RealizedPnL(st.Trades),
		DailyPnL:    DailyPnL(st.Trades, now),
		WeeklyPnL:   WeeklyPnL(st.Trades, now),
		MonthlyPnL:  MonthlyPnL(st.Trades, now),
		MaxDrawdown: MaxDrawdown(st.EquityHistory),
		Drawdowns:   Drawdowns(st.EquityHistory),
		Stats:       TradeStats(st.Trades),
		Instruments: RankInstruments(st.Trades),
		Positions:   Positions(st.Holdings),
		Allocations: Allocations(st.Holdings),
		Alerts:      Alerts(st.Holdings),
		Exposure:    OpenExposure(st.Holdings),

		OpenHoldings: len(st.Holdings),
	}
	s.TotalPnL = s.RealizedPnL + s.UnrealizedPnL
	for _, t := range st.Trades {
		if !t.IsClosed() {
			s.OpenTrades++
		}
	}
	return s
}
