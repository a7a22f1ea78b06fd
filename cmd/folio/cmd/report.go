package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/folio/metrics"
	"github.com/rustyeddy/folio/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print portfolio value, P/L, drawdown and trade statistics",
	Args:  cobra.NoArgs,
	RunE:  withSession(runReport),
}

var (
	reportJSON bool
	reportTop  int
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the summary as JSON")
	reportCmd.Flags().IntVar(&reportTop, "top", 0, "only list the N best and N worst instruments")
}

func runReport(cmd *cobra.Command, args []string, s *session) error {
	st := s.store.State()
	sum := metrics.Summarize(st, time.Now())
	if reportTop > 0 && 2*reportTop < len(sum.Instruments) {
		best := metrics.Best(st.Trades, reportTop)
		worst := metrics.Worst(st.Trades, reportTop)
		sum.Instruments = append(append([]metrics.InstrumentPerformance{}, best...), worst...)
	}

	if reportJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(sum); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
		return nil
	}

	report.PrintSummary(cmd.OutOrStdout(), sum, s.currency())
	return nil
}
