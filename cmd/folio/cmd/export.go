package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/folio/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the trade log or equity history",
	Long: `Export the trade log or equity history as CSV or Org-mode.

Examples:
  folio export trades --format org
  folio export equity -o equity.csv`,
}

var exportTradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "Export the trade log",
	Args:  cobra.NoArgs,
	RunE:  withSession(runExportTrades),
}

var exportEquityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Export the equity history",
	Args:  cobra.NoArgs,
	RunE:  withSession(runExportEquity),
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportTradesCmd, exportEquityCmd)

	exportCmd.PersistentFlags().StringVarP(&exportFormat, "format", "f", "csv", "csv or org")
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func exportWriter(cmd *cobra.Command) (io.Writer, func() error, error) {
	if exportOutput == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", exportOutput, err)
	}
	return f, f.Close, nil
}

func runExportTrades(cmd *cobra.Command, args []string, s *session) error {
	format, err := journal.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	w, done, err := exportWriter(cmd)
	if err != nil {
		return err
	}
	if err := journal.ExportTrades(w, format, s.store.Trades()); err != nil {
		done()
		return err
	}
	return done()
}

func runExportEquity(cmd *cobra.Command, args []string, s *session) error {
	format, err := journal.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	w, done, err := exportWriter(cmd)
	if err != nil {
		return err
	}
	if err := journal.ExportEquity(w, format, s.store.EquityHistory()); err != nil {
		done()
		return err
	}
	return done()
}
