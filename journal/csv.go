package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/folio/ledger"
)

var (
	TradeHeader  = []string{"trade_id", "symbol", "type", "quantity", "entry_price", "exit_price", "status", "pnl", "created_at", "closed_at"}
	EquityHeader = []string{"time", "value"}
)

// WriteTradesCSV writes a header row and one row per trade. Open trades
// leave exit_price and closed_at empty.
func WriteTradesCSV(w io.Writer, trades []ledger.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TradeHeader); err != nil {
		return err
	}
	for _, t := range trades {
		exit, closed := "", ""
		if t.ExitPrice != nil {
			exit = f(*t.ExitPrice)
		}
		if t.ClosedAt != nil {
			closed = t.ClosedAt.UTC().Format(time.RFC3339)
		}
		err := cw.Write([]string{
			t.ID,
			t.Symbol,
			string(t.Side),
			f(t.Quantity),
			f(t.EntryPrice),
			exit,
			string(t.Status),
			f(t.PnL),
			t.CreatedAt.UTC().Format(time.RFC3339),
			closed,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEquityCSV writes the equity history, oldest first.
func WriteEquityCSV(w io.Writer, snaps []ledger.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EquityHeader); err != nil {
		return err
	}
	for _, s := range snaps {
		if err := cw.Write([]string{s.Time.UTC().Format(time.RFC3339), f(s.Value)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
