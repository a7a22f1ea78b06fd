package report

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/folio/ledger"
	"github.com/rustyeddy/folio/metrics"
)

func TestMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{1200, "USD", "$1,200.00"},
		{-20.005, "USD", "-$20.01"},
		{0.1 + 0.2, "USD", "$0.30"},
		{1500, "JPY", "¥1,500"},
		{12.5, "XYZ", "12.50 XYZ"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.amount, tt.currency), "%v %s", tt.amount, tt.currency)
	}
}

func TestNumberFormats(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "20.00%", Percent(20))
	assert.Equal(t, "-8.33%", Percent(-8.333333))
	assert.Equal(t, "inf", Ratio(math.Inf(1)))
	assert.Equal(t, "4.00", Ratio(4))
	assert.Equal(t, "12.00", Price(12))
	assert.Equal(t, "1.0855", Price(1.08550001))
	assert.Equal(t, "-", OptPrice(nil))
	assert.Equal(t, "2.5", Qty(2.5))
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 14, 16, 0, 0, 0, time.UTC)
	at := now.Add(-time.Hour)
	st := ledger.State{
		Holdings: []ledger.Holding{{ID: "h1", Symbol: "AAPL", Quantity: 100, BuyPrice: 10, CurrentPrice: 12}},
		Trades: []ledger.Trade{{
			Symbol: "AAPL", Status: ledger.Closed, PnL: 50, ExitPrice: ledger.Price(15), ClosedAt: &at,
		}},
	}

	var buf bytes.Buffer
	PrintSummary(&buf, metrics.Summarize(st, now), "USD")
	out := buf.String()

	assert.Contains(t, out, "Total Value:   $1,200.00")
	assert.Contains(t, out, "Unrealized:    $200.00 (20.00%)")
	assert.Contains(t, out, "Realized:      $50.00")
	assert.Contains(t, out, "Profit Factor: inf")
	assert.Contains(t, out, "Win Rate:      100.00%")
	assert.NotContains(t, out, "Avg Loss")
	assert.Contains(t, out, "Allocation")
	assert.Regexp(t, `AAPL\s+\$1,200.00\s+100.00%`, out)
}

func TestPrintHoldingsAndTrades(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintHoldings(&buf, nil, "USD")
	assert.Equal(t, "no holdings\n", buf.String())

	buf.Reset()
	PrintHoldings(&buf, []ledger.Holding{{
		ID: "h1", Symbol: "AAPL", Quantity: 10, BuyPrice: 100, CurrentPrice: 110,
		StopLoss: ledger.Price(95), TrailingStop: true, TrailPercent: 5,
	}}, "USD")
	assert.Contains(t, buf.String(), "AAPL")
	assert.Contains(t, buf.String(), "$1,100.00")
	assert.Contains(t, buf.String(), "95.00")
	assert.Contains(t, buf.String(), "5.00%")
	assert.Contains(t, buf.String(), "R:R")

	buf.Reset()
	PrintHoldings(&buf, []ledger.Holding{{
		ID: "h2", Symbol: "MSFT", Quantity: 1, BuyPrice: 100, CurrentPrice: 100,
		StopLoss: ledger.Price(90), TakeProfit: ledger.Price(130),
	}}, "USD")
	assert.Regexp(t, `130.00\s+3.00\s+-`, buf.String())

	buf.Reset()
	PrintTrades(&buf, []ledger.Trade{{ID: "t1", Symbol: "MSFT", Side: ledger.Buy, Quantity: 2, EntryPrice: 300, Status: ledger.Open}}, "USD")
	assert.Contains(t, buf.String(), "MSFT")
	assert.Contains(t, buf.String(), "open")
}
