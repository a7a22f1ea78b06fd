package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/folio/ledger"
	"github.com/rustyeddy/folio/report"
)

var tradeCmd = &cobra.Command{
	Use:     "trade",
	Aliases: []string{"t"},
	Short:   "Manage the trade log",
	Long: `Record, close and list trades.

Examples:
  folio trade add AAPL 10 189.50
  folio trade add TSLA 3 250 --type SELL --exit 240
  folio trade close <id> 201.10
  folio trade list`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add <symbol> <quantity> <entry-price>",
	Short: "Record a trade",
	Args:  cobra.ExactArgs(3),
	RunE:  withSession(runTradeAdd),
}

var tradeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List trades",
	Args:    cobra.NoArgs,
	RunE:    withSession(runTradeList),
}

var tradeCloseCmd = &cobra.Command{
	Use:   "close <id> <exit-price>",
	Short: "Close an open trade",
	Args:  cobra.ExactArgs(2),
	RunE:  withSession(runTradeClose),
}

var tradeEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of an open trade",
	Args:  cobra.ExactArgs(1),
	RunE:  withSession(runTradeEdit),
}

var tradeRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Delete a trade",
	Args:    cobra.ExactArgs(1),
	RunE:    withSession(runTradeRemove),
}

var (
	tradeType string
	tradeExit float64

	tradeEditSymbol, tradeEditType string
	tradeEditQty, tradeEditEntry   float64
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd, tradeListCmd, tradeCloseCmd, tradeEditCmd, tradeRemoveCmd)

	tradeAddCmd.Flags().StringVar(&tradeType, "type", string(ledger.Buy), "BUY or SELL")
	tradeAddCmd.Flags().Float64Var(&tradeExit, "exit", 0, "exit price; records the trade closed")

	f := tradeEditCmd.Flags()
	f.StringVar(&tradeEditSymbol, "symbol", "", "symbol")
	f.StringVar(&tradeEditType, "type", "", "BUY or SELL")
	f.Float64Var(&tradeEditQty, "qty", 0, "quantity")
	f.Float64Var(&tradeEditEntry, "entry", 0, "entry price")
}

func runTradeAdd(cmd *cobra.Command, args []string, s *session) error {
	symbol, err := normalizeSymbol(args[0])
	if err != nil {
		return err
	}
	qty, err := parseNumber("quantity", args[1])
	if err != nil {
		return err
	}
	entry, err := parseNumber("entry_price", args[2])
	if err != nil {
		return err
	}
	side, err := ledger.ParseSide(tradeType)
	if err != nil {
		return err
	}

	spec := ledger.TradeSpec{Symbol: symbol, Side: side, Quantity: qty, EntryPrice: entry}
	if cmd.Flags().Changed("exit") {
		spec.ExitPrice = ledger.Price(tradeExit)
	}
	if err := ledger.ValidateTradeSpec(spec); err != nil {
		return err
	}

	tr := s.store.AddTrade(spec)
	s.log.WithField("trade", tr.ID).WithField("symbol", tr.Symbol).Info("trade recorded")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %s %s %s (%s)\n", tr.Side, report.Qty(tr.Quantity), tr.Symbol, tr.ID)
	return nil
}

func runTradeList(cmd *cobra.Command, args []string, s *session) error {
	report.PrintTrades(cmd.OutOrStdout(), s.store.Trades(), s.currency())
	return nil
}

func runTradeClose(cmd *cobra.Command, args []string, s *session) error {
	exit, err := parsePrice("exit_price", args[1])
	if err != nil {
		return err
	}
	res := s.store.CloseTrade(args[0], exit)
	if res == ledger.Updated {
		if tr, ok := s.store.Trade(args[0]); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Closed %s %s, P/L %s\n", tr.Symbol, tr.ID, report.Money(tr.PnL, s.currency()))
			return nil
		}
	}
	if res == ledger.Unchanged {
		fmt.Fprintf(cmd.OutOrStdout(), "trade %s already closed\n", args[0])
		return nil
	}
	return printResult(cmd, "trade", args[0], res)
}

func runTradeEdit(cmd *cobra.Command, args []string, s *session) error {
	flags := cmd.Flags()
	var patch ledger.TradePatch

	if flags.Changed("symbol") {
		sym, err := normalizeSymbol(tradeEditSymbol)
		if err != nil {
			return err
		}
		patch.Symbol = &sym
	}
	if flags.Changed("type") {
		side, err := ledger.ParseSide(tradeEditType)
		if err != nil {
			return err
		}
		patch.Side = &side
	}
	if flags.Changed("qty") {
		if err := ledger.ValidatePrice("quantity", tradeEditQty); err != nil {
			return err
		}
		patch.Quantity = &tradeEditQty
	}
	if flags.Changed("entry") {
		if err := ledger.ValidatePrice("entry_price", tradeEditEntry); err != nil {
			return err
		}
		patch.EntryPrice = &tradeEditEntry
	}
	return printResult(cmd, "trade", args[0], s.store.UpdateTrade(args[0], patch))
}

func runTradeRemove(cmd *cobra.Command, args []string, s *session) error {
	return printResult(cmd, "trade", args[0], s.store.RemoveTrade(args[0]))
}
