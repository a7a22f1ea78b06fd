package metrics

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/folio/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 14, 16, 0, 0, 0, time.UTC)

func closed(sym string, pnl float64, at time.Time) ledger.Trade {
	return ledger.Trade{
		Symbol:    sym,
		Side:      ledger.Sell,
		Quantity:  1,
		Status:    ledger.Closed,
		PnL:       pnl,
		ExitPrice: ledger.Price(1),
		ClosedAt:  &at,
	}
}

func snaps(values ...float64) []ledger.Snapshot {
	out := make([]ledger.Snapshot, len(values))
	for i, v := range values {
		out[i] = ledger.Snapshot{Time: now.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return out
}

func TestValueScenarioA(t *testing.T) {
	t.Parallel()

	v := Value([]ledger.Holding{{Symbol: "AAPL", Quantity: 100, BuyPrice: 10, CurrentPrice: 12}})
	assert.InDelta(t, 1200.0, v.TotalValue, 1e-9)
	assert.InDelta(t, 1000.0, v.TotalCost, 1e-9)
	assert.InDelta(t, 200.0, v.UnrealizedPnL, 1e-9)
	assert.InDelta(t, 20.0, v.UnrealizedPnLPercent, 1e-9)
}

func TestValueEmptyAndZeroCost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Valuation{}, Value(nil))

	v := Value([]ledger.Holding{{Symbol: "GIFT", Quantity: 3, CurrentPrice: 10}})
	assert.Equal(t, 30.0, v.TotalValue)
	assert.Equal(t, 0.0, v.UnrealizedPnLPercent)
	assert.False(t, math.IsNaN(v.UnrealizedPnLPercent))
}

func TestDuplicateHoldingsAreSummed(t *testing.T) {
	t.Parallel()

	hs := []ledger.Holding{
		{Symbol: "AAPL", Quantity: 10, BuyPrice: 100, CurrentPrice: 110},
		{Symbol: "AAPL", Quantity: 30, BuyPrice: 120, CurrentPrice: 110},
	}
	v := Value(hs)
	assert.InDelta(t, 4400.0, v.TotalValue, 1e-9)
	assert.InDelta(t, 4600.0, v.TotalCost, 1e-9)

	pos := Positions(hs)
	require.Len(t, pos, 1)
	assert.Equal(t, 2, pos[0].Holdings)
	assert.InDelta(t, 115.0, pos[0].AvgBuyPrice, 1e-9)
	assert.InDelta(t, -200.0, pos[0].PnL, 1e-9)
}

func TestAllocations(t *testing.T) {
	t.Parallel()

	hs := []ledger.Holding{
		{Symbol: "A", Quantity: 1, CurrentPrice: 25},
		{Symbol: "B", Quantity: 1, CurrentPrice: 75},
	}
	a := Allocations(hs)
	require.Len(t, a, 2)
	assert.Equal(t, "B", a[0].Symbol)
	assert.InDelta(t, 75.0, a[0].Percent, 1e-9)
	assert.Empty(t, Allocations(nil))
}

func TestTotalPnLIdentity(t *testing.T) {
	t.Parallel()

	st := ledger.State{
		Holdings: []ledger.Holding{
			{Symbol: "AAPL", Quantity: 100, BuyPrice: 10, CurrentPrice: 12},
			{Symbol: "MSFT", Quantity: 2, BuyPrice: 300, CurrentPrice: 250},
		},
		Trades: []ledger.Trade{
			closed("AAPL", 50, now),
			closed("MSFT", -20, now),
			{Symbol: "NVDA", Status: ledger.Open, PnL: 999},
		},
	}
	assert.InDelta(t, 30.0, RealizedPnL(st.Trades), 1e-9)
	assert.InDelta(t, 100.0, UnrealizedPnL(st.Holdings), 1e-9)
	assert.InDelta(t, RealizedPnL(st.Trades)+UnrealizedPnL(st.Holdings), TotalPnL(st), 1e-9)
}

func TestWindowedPnL(t *testing.T) {
	t.Parallel()

	trades := []ledger.Trade{
		closed("A", 10, now.Add(-time.Hour)),         // today
		closed("B", 20, now.Add(-17*time.Hour)),      // yesterday, within 24h
		closed("C", 40, now.Add(-6*24*time.Hour)),    // this week
		closed("D", 80, now.Add(-20*24*time.Hour)),   // this month
		closed("E", 160, now.Add(-40*24*time.Hour)),  // older
		closed("F", 320, now.Add(48*time.Hour)),      // future
		{Symbol: "G", Status: ledger.Open, PnL: 640}, // open
	}

	assert.InDelta(t, 10.0, DailyPnL(trades, now), 1e-9)
	assert.InDelta(t, 70.0, WeeklyPnL(trades, now), 1e-9)
	assert.InDelta(t, 150.0, MonthlyPnL(trades, now), 1e-9)
	assert.Equal(t, 0.0, DailyPnL(nil, now))
}

func TestDailyPnLUsesUTCCalendarDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2024, 6, 14, 21, 0, 0, 0, loc) // 2024-06-15 02:00 UTC
	trades := []ledger.Trade{
		closed("A", 5, time.Date(2024, 6, 15, 0, 30, 0, 0, time.UTC)),
		closed("B", 7, time.Date(2024, 6, 14, 23, 30, 0, 0, time.UTC)),
	}
	assert.InDelta(t, 5.0, DailyPnL(trades, local), 1e-9)
}

func TestDrawdownScenarioC(t *testing.T) {
	t.Parallel()

	pts := Drawdowns(snaps(100, 120, 90, 110))
	require.Len(t, pts, 4)

	want := []float64{0, 0, -25, -8.333333}
	for i, p := range pts {
		assert.InDelta(t, want[i], p.Drawdown, 1e-4)
	}
	assert.InDelta(t, -25.0, MaxDrawdown(snaps(100, 120, 90, 110)), 1e-9)
}

func TestMaxDrawdownEdges(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, MaxDrawdown(nil))
	assert.Equal(t, 0.0, MaxDrawdown(snaps(100)))
	assert.Equal(t, 0.0, MaxDrawdown(snaps(100, 110, 120)))
	assert.Equal(t, 0.0, MaxDrawdown(snaps(0, 0, 0)))
	assert.Empty(t, Drawdowns(nil))

	for _, series := range [][]float64{{50, 10, 80, 20}, {1, 2}, {3, 1}} {
		dd := MaxDrawdown(snaps(series...))
		assert.LessOrEqual(t, dd, 0.0)
		assert.False(t, math.IsNaN(dd))
	}
}

func TestTradeStatsScenarioB(t *testing.T) {
	t.Parallel()

	s := TradeStats([]ledger.Trade{
		closed("A", 50, now),
		closed("B", -20, now),
		closed("C", 30, now),
	})
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 66.67, s.WinRate, 0.01)
	assert.InDelta(t, 4.0, s.ProfitFactor, 1e-9)
	assert.InDelta(t, 40.0, s.AvgWin, 1e-9)
	assert.InDelta(t, 20.0, s.AvgLoss, 1e-9)
	assert.Equal(t, 50.0, s.LargestWin)
	assert.Equal(t, 20.0, s.LargestLoss)
}

func TestProfitFactorEdges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pnls []float64
		want float64
	}{
		{"no trades", nil, 0},
		{"only losses", []float64{-5, -10}, 0},
		{"only wins", []float64{5, 10}, math.Inf(1)},
		{"breakeven only", []float64{0}, 0},
		{"mixed", []float64{30, -10}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trades []ledger.Trade
			for _, p := range tt.pnls {
				trades = append(trades, closed("X", p, now))
			}
			s := TradeStats(trades)
			assert.Equal(t, tt.want, s.ProfitFactor)
			assert.False(t, math.IsNaN(s.WinRate))
			assert.False(t, math.IsNaN(s.AvgWin))
			assert.False(t, math.IsNaN(s.AvgLoss))
		})
	}
}

func TestTradeStatsIgnoresOpenTrades(t *testing.T) {
	t.Parallel()

	s := TradeStats([]ledger.Trade{{Symbol: "A", Status: ledger.Open, PnL: 100}})
	assert.Equal(t, Stats{}, s)
}

func TestRankInstruments(t *testing.T) {
	t.Parallel()

	trades := []ledger.Trade{
		closed("AAPL", 50, now),
		closed("MSFT", -20, now),
		closed("AAPL", -10, now),
		closed("NVDA", 100, now),
		closed("TSLA", -20, now),
		{Symbol: "AMD", Status: ledger.Open},
	}

	r := RankInstruments(trades)
	require.Len(t, r, 4)
	assert.Equal(t, InstrumentPerformance{"NVDA", 100, 1}, r[0])
	assert.Equal(t, InstrumentPerformance{"AAPL", 40, 2}, r[1])
	assert.Equal(t, "MSFT", r[2].Symbol)
	assert.Equal(t, "TSLA", r[3].Symbol)

	assert.Equal(t, []InstrumentPerformance{r[0]}, Best(trades, 1))
	worst := Worst(trades, 2)
	require.Len(t, worst, 2)
	assert.Equal(t, "TSLA", worst[0].Symbol)
	assert.Empty(t, RankInstruments(nil))

	limits := []struct {
		n    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{2, 2},
		{10, 4},
	}
	for _, tt := range limits {
		assert.Len(t, Best(trades, tt.n), tt.want, "Best n=%d", tt.n)
		assert.Len(t, Worst(trades, tt.n), tt.want, "Worst n=%d", tt.n)
	}
}

func TestAlerts(t *testing.T) {
	t.Parallel()

	hs := []ledger.Holding{
		{ID: "1", Symbol: "A", CurrentPrice: 90, StopLoss: ledger.Price(95)},
		{ID: "2", Symbol: "B", CurrentPrice: 120, TakeProfit: ledger.Price(110)},
		{ID: "3", Symbol: "C", CurrentPrice: 100, StopLoss: ledger.Price(95), TakeProfit: ledger.Price(110)},
	}
	a := Alerts(hs)
	require.Len(t, a, 2)
	assert.Equal(t, Alert{"1", "A", StopLoss, 90, 95}, a[0])
	assert.Equal(t, TakeProfit, a[1].Kind)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	st := ledger.State{
		Holdings: []ledger.Holding{{Symbol: "AAPL", Quantity: 100, BuyPrice: 10, CurrentPrice: 12}},
		Trades: []ledger.Trade{
			closed("AAPL", 50, now),
			{Symbol: "AAPL", Status: ledger.Open},
		},
		EquityHistory: snaps(100, 120, 90, 110),
	}

	s := Summarize(st, now)
	assert.InDelta(t, 200.0, s.UnrealizedPnL, 1e-9)
	assert.InDelta(t, 250.0, s.TotalPnL, 1e-9)
	assert.InDelta(t, 50.0, s.DailyPnL, 1e-9)
	assert.InDelta(t, -25.0, s.MaxDrawdown, 1e-9)
	assert.Equal(t, 1, s.OpenTrades)
	assert.Equal(t, 1, s.OpenHoldings)
	require.Len(t, s.Allocations, 1)
	assert.InDelta(t, 100.0, s.Allocations[0].Percent, 1e-9)

	empty := Summarize(ledger.State{}, now)
	assert.Equal(t, 0.0, empty.TotalPnL)
	assert.Equal(t, 0.0, empty.Stats.ProfitFactor)
}

func TestExposure(t *testing.T) {
	t.Parallel()

	hs := []ledger.Holding{
		{Symbol: "A", Quantity: 10, CurrentPrice: 100, StopLoss: ledger.Price(90), TakeProfit: ledger.Price(130)},
		{Symbol: "B", Quantity: 5, CurrentPrice: 50, StopLoss: ledger.Price(55)},
		{Symbol: "C", Quantity: 1, CurrentPrice: 250},
	}

	assert.InDelta(t, 100.0, StopRisk(hs[0]), 1e-9)
	assert.Equal(t, 0.0, StopRisk(hs[1]))
	assert.InDelta(t, 3.0, RiskReward(hs[0]), 1e-9)
	assert.Equal(t, 0.0, RiskReward(hs[1]))

	e := OpenExposure(hs)
	assert.InDelta(t, 100.0, e.AtRisk, 1e-9)
	assert.InDelta(t, 6.6667, e.Percent, 1e-4)
	assert.Equal(t, 1, e.Unguarded)
	assert.Equal(t, Exposure{}, OpenExposure(nil))
}

func TestStatsJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		trades []ledger.Trade
		want   any
	}{
		{"wins without losses", []ledger.Trade{closed("AAPL", 50, now)}, nil},
		{"no wins", []ledger.Trade{closed("AAPL", -50, now)}, 0.0},
		{"mixed", []ledger.Trade{closed("AAPL", 50, now), closed("MSFT", -25, now)}, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(TradeStats(tt.trades))
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(b, &got))
			assert.Equal(t, tt.want, got["ProfitFactor"])
			assert.Contains(t, got, "Wins")
		})
	}
}
