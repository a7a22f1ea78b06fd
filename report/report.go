package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/folio/ledger"
	"github.com/rustyeddy/folio/metrics"
)

const rule = "--------------------------------------------------"

// PrintSummary writes the portfolio summary.
func PrintSummary(w io.Writer, s metrics.Summary, currency string) {
	m := func(v float64) string { return Money(v, currency) }

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Portfolio Summary")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "As of:         %s\n", s.AsOf.Format(time.RFC3339))
	fmt.Fprintf(w, "Holdings:      %d\n", s.OpenHoldings)
	fmt.Fprintf(w, "Open Trades:   %d\n", s.OpenTrades)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Valuation")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Value:   %s\n", m(s.TotalValue))
	fmt.Fprintf(w, "Total Cost:    %s\n", m(s.TotalCost))
	fmt.Fprintf(w, "Unrealized:    %s (%s)\n", m(s.UnrealizedPnL), Percent(s.UnrealizedPnLPercent))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit & Loss")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Realized:      %s\n", m(s.RealizedPnL))
	fmt.Fprintf(w, "Total:         %s\n", m(s.TotalPnL))
	fmt.Fprintf(w, "Today:         %s\n", m(s.DailyPnL))
	fmt.Fprintf(w, "7 Days:        %s\n", m(s.WeeklyPnL))
	fmt.Fprintf(w, "30 Days:       %s\n", m(s.MonthlyPnL))
	fmt.Fprintf(w, "Max Drawdown:  %s\n", Percent(s.MaxDrawdown))
	fmt.Fprintf(w, "At Risk:       %s (%s)\n", m(s.Exposure.AtRisk), Percent(s.Exposure.Percent))
	if s.Exposure.Unguarded > 0 {
		fmt.Fprintf(w, "No Stop:       %d holdings\n", s.Exposure.Unguarded)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Closed Trades: %d\n", s.Stats.Total)
	fmt.Fprintf(w, "Wins:          %d\n", s.Stats.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Stats.Losses)
	fmt.Fprintf(w, "Win Rate:      %s\n", Percent(s.Stats.WinRate))
	fmt.Fprintf(w, "Profit Factor: %s\n", Ratio(s.Stats.ProfitFactor))
	if s.Stats.Wins > 0 {
		fmt.Fprintf(w, "Avg Win:       %s\n", m(s.Stats.AvgWin))
		fmt.Fprintf(w, "Largest Win:   %s\n", m(s.Stats.LargestWin))
	}
	if s.Stats.Losses > 0 {
		fmt.Fprintf(w, "Avg Loss:      %s\n", m(s.Stats.AvgLoss))
		fmt.Fprintf(w, "Largest Loss:  %s\n", m(s.Stats.LargestLoss))
	}

	if len(s.Instruments) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Instruments")
		fmt.Fprintln(w, rule)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, ip := range s.Instruments {
			fmt.Fprintf(tw, "%s\t%s\t%d trades\n", ip.Symbol, m(ip.PnL), ip.Trades)
		}
		tw.Flush()
	}

	if len(s.Allocations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Allocation")
		fmt.Fprintln(w, rule)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, a := range s.Allocations {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Symbol, m(a.Value), Percent(a.Percent))
		}
		tw.Flush()
	}

	if len(s.Alerts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Alerts")
		fmt.Fprintln(w, rule)
		for _, a := range s.Alerts {
			fmt.Fprintf(w, "- %s %s at %s (level %s)\n", a.Symbol, a.Kind, Price(a.Price), Price(a.Level))
		}
	}

	fmt.Fprintln(w)
}

// PrintHoldings writes one row per holding.
func PrintHoldings(w io.Writer, hs []ledger.Holding, currency string) {
	if len(hs) == 0 {
		fmt.Fprintln(w, "no holdings")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tSYMBOL\tQTY\tBUY\tPRICE\tVALUE\tP/L\tSTOP\tTARGET\tR:R\tTRAIL")
	for i, h := range hs {
		trail := "-"
		if h.TrailingStop {
			trail = Percent(h.TrailPercent)
		}
		rr := "-"
		if v := metrics.RiskReward(h); v > 0 {
			rr = Ratio(v)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i, h.ID, h.Symbol, Qty(h.Quantity),
			Price(h.BuyPrice), Price(h.CurrentPrice),
			Money(h.Value(), currency), Money(h.UnrealizedPnL(), currency),
			OptPrice(h.StopLoss), OptPrice(h.TakeProfit), rr, trail,
		)
	}
	tw.Flush()
}

// PrintTrades writes one row per trade.
func PrintTrades(w io.Writer, trades []ledger.Trade, currency string) {
	if len(trades) == 0 {
		fmt.Fprintln(w, "no trades")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSYMBOL\tTYPE\tQTY\tENTRY\tEXIT\tSTATUS\tP/L\tOPENED")
	for _, t := range trades {
		pnl := "-"
		if t.IsClosed() {
			pnl = Money(t.PnL, currency)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Symbol, t.Side, Qty(t.Quantity),
			Price(t.EntryPrice), OptPrice(t.ExitPrice), t.Status, pnl,
			t.CreatedAt.Format(time.DateOnly),
		)
	}
	tw.Flush()
}
