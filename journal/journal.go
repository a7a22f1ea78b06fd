// Package journal exports the trade log and equity history as CSV or as
// Org-mode entries.
package journal

import (
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/folio/ledger"
)

// Format names an export format.
type Format string

const (
	CSV Format = "csv"
	Org Format = "org"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case CSV:
		return CSV, nil
	case Org:
		return Org, nil
	default:
		return "", fmt.Errorf("unknown format %q: want csv or org", s)
	}
}

// ExportTrades writes trades in the given format.
func ExportTrades(w io.Writer, f Format, trades []ledger.Trade) error {
	switch f {
	case CSV:
		return WriteTradesCSV(w, trades)
	case Org:
		_, err := io.WriteString(w, FormatTradesOrg(trades))
		return err
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// ExportEquity writes equity snapshots in the given format.
func ExportEquity(w io.Writer, f Format, snaps []ledger.Snapshot) error {
	switch f {
	case CSV:
		return WriteEquityCSV(w, snaps)
	case Org:
		_, err := io.WriteString(w, FormatEquityOrg(snaps))
		return err
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}
