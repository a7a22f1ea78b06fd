package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/folio/ledger"
	"github.com/rustyeddy/folio/report"
)

var holdingCmd = &cobra.Command{
	Use:     "holding",
	Aliases: []string{"h"},
	Short:   "Manage holdings",
	Long: `Add, edit, sell and list holdings.

Examples:
  folio holding add AAPL 10 --buy 189.50 --stop 175
  folio holding add MSFT 2 --buy 410 --trail 8 --open-trade
  folio holding sell <id> 5 195.20
  folio holding list`,
}

var holdingAddCmd = &cobra.Command{
	Use:   "add <symbol> <quantity>",
	Short: "Add a holding",
	Args:  cobra.ExactArgs(2),
	RunE:  withSession(runHoldingAdd),
}

var holdingListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List holdings",
	Args:    cobra.NoArgs,
	RunE:    withSession(runHoldingList),
}

var holdingSellCmd = &cobra.Command{
	Use:   "sell <id> <quantity> <price>",
	Short: "Sell part or all of a holding",
	Args:  cobra.ExactArgs(3),
	RunE:  withSession(runHoldingSell),
}

var holdingRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a holding without recording a trade",
	Args:    cobra.ExactArgs(1),
	RunE:    withSession(runHoldingRemove),
}

var holdingEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a holding",
	Long: `Change fields of a holding. Only the flags given are applied.
Setting --qty 0 removes the holding.`,
	Args: cobra.ExactArgs(1),
	RunE: withSession(runHoldingEdit),
}

var holdingMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a holding to another position in the list",
	Args:  cobra.ExactArgs(2),
	RunE:  withSession(runHoldingMove),
}

var holdingStopsCmd = &cobra.Command{
	Use:   "stops <percent>",
	Short: "Set every stop-loss to a percentage below the buy price",
	Args:  cobra.ExactArgs(1),
	RunE:  withSession(runHoldingStops),
}

var holdingTrailCmd = &cobra.Command{
	Use:   "trail <id> [percent]",
	Short: "Enable or disable a trailing stop",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  withSession(runHoldingTrail),
}

var holdingConsolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Merge holdings of the same symbol",
	Args:  cobra.NoArgs,
	RunE:  withSession(runHoldingConsolidate),
}

var (
	addBuy, addCurrent, addStop, addTarget, addTrail float64
	addDate                                          string
	addOpenTrade                                     bool

	editSymbol, editDate                                string
	editQty, editBuy, editCurrent, editStop, editTarget float64
	editClearStop, editClearTarget                      bool

	trailOff bool
)

func init() {
	rootCmd.AddCommand(holdingCmd)
	holdingCmd.AddCommand(holdingAddCmd, holdingListCmd, holdingSellCmd, holdingRemoveCmd,
		holdingEditCmd, holdingMoveCmd, holdingStopsCmd, holdingTrailCmd, holdingConsolidateCmd)

	f := holdingAddCmd.Flags()
	f.Float64VarP(&addBuy, "buy", "b", 0, "buy price (0 if unknown)")
	f.Float64Var(&addCurrent, "current", 0, "current price (defaults to buy price)")
	f.StringVar(&addDate, "date", "", "buy date YYYY-MM-DD (defaults to now)")
	f.Float64Var(&addStop, "stop", 0, "stop-loss price")
	f.Float64Var(&addTarget, "target", 0, "take-profit price")
	f.Float64Var(&addTrail, "trail", 0, "trailing stop percent")
	f.BoolVar(&addOpenTrade, "open-trade", false, "also record an open BUY trade")

	f = holdingEditCmd.Flags()
	f.StringVar(&editSymbol, "symbol", "", "symbol")
	f.Float64Var(&editQty, "qty", 0, "quantity")
	f.Float64Var(&editBuy, "buy", 0, "buy price")
	f.Float64Var(&editCurrent, "current", 0, "current price")
	f.StringVar(&editDate, "date", "", "buy date YYYY-MM-DD")
	f.Float64Var(&editStop, "stop", 0, "stop-loss price")
	f.Float64Var(&editTarget, "target", 0, "take-profit price")
	f.BoolVar(&editClearStop, "clear-stop", false, "remove the stop-loss")
	f.BoolVar(&editClearTarget, "clear-target", false, "remove the take-profit")

	holdingTrailCmd.Flags().BoolVar(&trailOff, "off", false, "disable the trailing stop")
}

func runHoldingAdd(cmd *cobra.Command, args []string, s *session) error {
	symbol, err := normalizeSymbol(args[0])
	if err != nil {
		return err
	}
	qty, err := parseNumber("quantity", args[1])
	if err != nil {
		return err
	}

	spec := ledger.HoldingSpec{
		Symbol:       symbol,
		Quantity:     qty,
		BuyPrice:     addBuy,
		CurrentPrice: addCurrent,
	}
	if addDate != "" {
		if spec.BuyDate, err = parseDate("date", addDate); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("stop") {
		spec.StopLoss = ledger.Price(addStop)
	} else if pct := s.store.Settings().DefaultStopPercent; pct > 0 && addBuy > 0 {
		spec.StopLoss = ledger.Price(addBuy * (1 - pct/100))
	}
	if flags.Changed("target") {
		spec.TakeProfit = ledger.Price(addTarget)
	}
	if flags.Changed("trail") {
		spec.TrailingStop = true
		spec.TrailPercent = addTrail
	}
	if err := ledger.ValidateHoldingSpec(spec); err != nil {
		return err
	}

	var h ledger.Holding
	if addOpenTrade {
		var tr ledger.Trade
		h, tr, _ = s.store.OpenPosition(spec)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Opened trade %s\n", tr.ID)
	} else {
		h, _ = s.store.AddHolding(spec)
	}
	s.log.WithField("holding", h.ID).WithField("symbol", h.Symbol).Info("holding added")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s %s (%s)\n", report.Qty(h.Quantity), h.Symbol, h.ID)
	return nil
}

func runHoldingList(cmd *cobra.Command, args []string, s *session) error {
	report.PrintHoldings(cmd.OutOrStdout(), s.store.Holdings(), s.currency())
	return nil
}

func runHoldingSell(cmd *cobra.Command, args []string, s *session) error {
	qty, err := parsePrice("quantity", args[1])
	if err != nil {
		return err
	}
	price, err := parsePrice("price", args[2])
	if err != nil {
		return err
	}

	tr, res := s.store.SellHolding(args[0], qty, price)
	if res != ledger.Updated {
		return printResult(cmd, "holding", args[0], res)
	}
	s.log.WithField("holding", args[0]).WithField("trade", tr.ID).Info("holding sold")
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Sold %s %s at %s, P/L %s\n",
		report.Qty(tr.Quantity), tr.Symbol, report.Price(price), report.Money(tr.PnL, s.currency()))
	return nil
}

func runHoldingRemove(cmd *cobra.Command, args []string, s *session) error {
	return printResult(cmd, "holding", args[0], s.store.RemoveHolding(args[0]))
}

func runHoldingEdit(cmd *cobra.Command, args []string, s *session) error {
	flags := cmd.Flags()
	var patch ledger.HoldingPatch

	if flags.Changed("symbol") {
		sym, err := normalizeSymbol(editSymbol)
		if err != nil {
			return err
		}
		patch.Symbol = &sym
	}
	if flags.Changed("qty") {
		// 0 is allowed and removes the holding.
		if editQty != 0 {
			if err := ledger.ValidatePrice("quantity", editQty); err != nil {
				return err
			}
		}
		patch.Quantity = &editQty
	}
	prices := []struct {
		flag string
		v    float64
		dst  **float64
	}{
		{"buy", editBuy, &patch.BuyPrice},
		{"current", editCurrent, &patch.CurrentPrice},
		{"stop", editStop, &patch.StopLoss},
		{"target", editTarget, &patch.TakeProfit},
	}
	for _, p := range prices {
		if !flags.Changed(p.flag) {
			continue
		}
		if err := ledger.ValidatePrice(p.flag, p.v); err != nil {
			return err
		}
		*p.dst = ledger.Price(p.v)
	}
	if flags.Changed("date") {
		d, err := parseDate("date", editDate)
		if err != nil {
			return err
		}
		patch.BuyDate = &d
	}
	patch.ClearStopLoss = editClearStop
	patch.ClearTakeProfit = editClearTarget

	return printResult(cmd, "holding", args[0], s.store.UpdateHolding(args[0], patch))
}

func runHoldingMove(cmd *cobra.Command, args []string, s *session) error {
	from, err := parseIndex("from", args[0])
	if err != nil {
		return err
	}
	to, err := parseIndex("to", args[1])
	if err != nil {
		return err
	}
	return printResult(cmd, "holding at", args[0], s.store.ReorderHoldings(from, to))
}

func runHoldingStops(cmd *cobra.Command, args []string, s *session) error {
	pct, err := parseNumber("percent", args[0])
	if err != nil {
		return err
	}
	if err := ledger.ValidatePercent("percent", pct); err != nil {
		return err
	}
	n := s.store.BulkUpdateStopLoss(pct)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Set stop-loss on %d holdings\n", n)
	return nil
}

func runHoldingTrail(cmd *cobra.Command, args []string, s *session) error {
	if trailOff {
		return printResult(cmd, "holding", args[0], s.store.DisableTrailingStop(args[0]))
	}
	if len(args) < 2 {
		return &ledger.ValidationError{Field: "percent", Msg: "is required unless --off is given"}
	}
	pct, err := parseNumber("percent", args[1])
	if err != nil {
		return err
	}
	if err := ledger.ValidatePercent("percent", pct); err != nil {
		return err
	}
	return printResult(cmd, "holding", args[0], s.store.EnableTrailingStop(args[0], pct))
}

func runHoldingConsolidate(cmd *cobra.Command, args []string, s *session) error {
	n := s.store.Consolidate()
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Merged %d holdings\n", n)
	return nil
}
