package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage the watchlist",
}

var watchAddCmd = &cobra.Command{
	Use:   "add <symbol>...",
	Short: "Watch symbols",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withSession(runWatchAdd),
}

var watchRemoveCmd = &cobra.Command{
	Use:     "rm <symbol>",
	Aliases: []string{"remove"},
	Short:   "Stop watching a symbol",
	Args:    cobra.ExactArgs(1),
	RunE:    withSession(runWatchRemove),
}

var watchListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List watched symbols",
	Args:    cobra.NoArgs,
	RunE:    withSession(runWatchList),
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.AddCommand(watchAddCmd, watchRemoveCmd, watchListCmd)
}

func runWatchAdd(cmd *cobra.Command, args []string, s *session) error {
	for _, a := range args {
		sym, err := normalizeSymbol(a)
		if err != nil {
			return err
		}
		if err := printResult(cmd, "watch", sym, s.store.AddToWatchlist(sym)); err != nil {
			return err
		}
	}
	return nil
}

func runWatchRemove(cmd *cobra.Command, args []string, s *session) error {
	sym, err := normalizeSymbol(args[0])
	if err != nil {
		return err
	}
	return printResult(cmd, "watch", sym, s.store.RemoveFromWatchlist(sym))
}

func runWatchList(cmd *cobra.Command, args []string, s *session) error {
	list := s.store.Watchlist()
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "watchlist is empty")
		return nil
	}
	for _, sym := range list {
		fmt.Fprintln(cmd.OutOrStdout(), sym)
	}
	return nil
}
