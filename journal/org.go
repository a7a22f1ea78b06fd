package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/folio/ledger"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for pasting
// into a journal. Structured facts go in the PROPERTIES drawer; the Thesis
// and Review headings are left for notes.
func FormatTradeOrg(t ledger.Trade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s (%s)\n", t.Side, t.Symbol, shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", t.Symbol)
	fmt.Fprintf(&b, ":TYPE: %s\n", t.Side)
	fmt.Fprintf(&b, ":QUANTITY: %g\n", t.Quantity)
	fmt.Fprintf(&b, ":ENTRY_PRICE: %.2f\n", t.EntryPrice)
	if t.ExitPrice != nil {
		fmt.Fprintf(&b, ":EXIT_PRICE: %.2f\n", *t.ExitPrice)
	}
	fmt.Fprintf(&b, ":STATUS: %s\n", t.Status)
	fmt.Fprintf(&b, ":CREATED: %s\n", t.CreatedAt.UTC().Format(time.RFC3339))
	if t.ClosedAt != nil {
		fmt.Fprintf(&b, ":CLOSED: %s\n", t.ClosedAt.UTC().Format(time.RFC3339))
	}
	if t.IsClosed() {
		fmt.Fprintf(&b, ":PNL: %.2f\n", t.PnL)
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Review\n- \n")
	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []ledger.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// FormatEquityOrg renders the equity history as an Org table.
func FormatEquityOrg(snaps []ledger.Snapshot) string {
	var b strings.Builder
	b.WriteString("| time | value |\n")
	b.WriteString("|------+-------|\n")
	for _, s := range snaps {
		fmt.Fprintf(&b, "| %s | %.2f |\n", s.Time.UTC().Format(time.RFC3339), s.Value)
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
