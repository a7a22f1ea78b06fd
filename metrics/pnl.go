package metrics

import (
	"time"

	"github.com/rustyeddy/folio/ledger"
)

const (
	Week  = 7 * 24 * time.Hour
	Month = 30 * 24 * time.Hour
)

// RealizedPnL sums PnL over closed trades. Open trades never count.
func RealizedPnL(trades []ledger.Trade) float64 {
	var sum float64
	for _, t := range trades {
		if t.IsClosed() {
			sum += t.PnL
		}
	}
	return sum
}

// UnrealizedPnL sums (current - buy) * quantity over the holdings.
func UnrealizedPnL(hs []ledger.Holding) float64 {
	var sum float64
	for _, h := range hs {
		sum += h.UnrealizedPnL()
	}
	return sum
}

// TotalPnL is realized plus unrealized PnL.
func TotalPnL(st ledger.State) float64 {
	return RealizedPnL(st.Trades) + UnrealizedPnL(st.Holdings)
}

// WindowPnL sums PnL of trades closed within [now-window, now].
func WindowPnL(trades []ledger.Trade, now time.Time, window time.Duration) float64 {
	start := now.Add(-window)
	var sum float64
	for _, t := range trades {
		if !t.IsClosed() || t.ClosedAt == nil {
			continue
		}
		at := *t.ClosedAt
		if at.Before(start) || at.After(now) {
			continue
		}
		sum += t.PnL
	}
	return sum
}

// DailyPnL sums PnL of trades closed on the same UTC calendar date as now.
// It compares ISO date strings rather than a rolling 24 hours.
func DailyPnL(trades []ledger.Trade, now time.Time) float64 {
	day := isoDate(now)
	var sum float64
	for _, t := range trades {
		if !t.IsClosed() || t.ClosedAt == nil {
			continue
		}
		if isoDate(*t.ClosedAt) == day {
			sum += t.PnL
		}
	}
	return sum
}

// WeeklyPnL sums PnL of trades closed in the last seven days.
func WeeklyPnL(trades []ledger.Trade, now time.Time) float64 {
	return WindowPnL(trades, now, Week)
}

// MonthlyPnL sums PnL of trades closed in the last thirty days.
func MonthlyPnL(trades []ledger.Trade, now time.Time) float64 {
	return WindowPnL(trades, now, Month)
}

func isoDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
