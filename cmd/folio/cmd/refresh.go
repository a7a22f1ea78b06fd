package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/folio/feed"
	"github.com/rustyeddy/folio/report"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Update prices and record an equity snapshot",
	Long: `Fetch the latest price of every held symbol, update the holdings,
ratchet trailing stops and record an equity snapshot.

Prices come from the configured feed URL, or from --price flags.

Examples:
  folio refresh
  folio refresh --price AAPL=190.12 --price MSFT=415
  folio refresh --watch`,
	Args: cobra.NoArgs,
	RunE: withSession(runRefresh),
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record an equity snapshot at current prices",
	Args:  cobra.NoArgs,
	RunE:  withSession(runSnapshot),
}

var (
	refreshWatch  bool
	refreshPrices []string
)

func init() {
	rootCmd.AddCommand(refreshCmd, snapshotCmd)

	refreshCmd.Flags().BoolVarP(&refreshWatch, "watch", "w", false, "keep refreshing at the configured interval")
	refreshCmd.Flags().StringArrayVarP(&refreshPrices, "price", "p", nil, "fixed quote SYMBOL=PRICE (repeatable)")
}

func quoteSource(s *session) (feed.Source, error) {
	if len(refreshPrices) > 0 {
		prices := make(map[string]float64, len(refreshPrices))
		for _, p := range refreshPrices {
			sym, price, err := parseQuote(p)
			if err != nil {
				return nil, err
			}
			prices[sym] = price
		}
		return feed.NewStaticSource(prices), nil
	}
	if s.cfg.Feed.URL == "" {
		return nil, errors.New("no price feed: set feed.url, FOLIO_FEED_URL or pass --price")
	}
	timeout, err := s.cfg.Feed.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return feed.NewHTTPSource(s.cfg.Feed.URL, s.cfg.Feed.Token, timeout), nil
}

func runRefresh(cmd *cobra.Command, args []string, s *session) error {
	src, err := quoteSource(s)
	if err != nil {
		return err
	}

	// nil: log through the session logger carried by cmd.Context().
	r := feed.NewRefresher(s.store, src, nil)
	if refreshWatch {
		if r.Interval, err = s.cfg.Feed.IntervalDuration(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "Refreshing every %s, Ctrl-C to stop\n", r.Interval)
		return r.Run(ctx)
	}

	res, err := r.RefreshOnce(cmd.Context())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	out := cmd.OutOrStdout()
	for _, q := range res.Priced {
		fmt.Fprintf(out, "%-8s %s\n", q.Symbol, report.Price(q.Price))
	}
	for sym, ferr := range res.Failed {
		fmt.Fprintf(out, "%-8s failed: %v\n", sym, ferr)
	}
	for _, a := range res.Alerts {
		fmt.Fprintf(out, "! %s %s at %s (level %s)\n", a.Symbol, a.Kind, report.Price(a.Price), report.Price(a.Level))
	}
	fmt.Fprintf(out, "✓ Portfolio value %s\n", report.Money(res.Snapshot.Value, s.currency()))
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string, s *session) error {
	snap := s.store.TakeEquitySnapshot()
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Snapshot %s %s\n", snap.Time.Format("2006-01-02 15:04"), report.Money(snap.Value, s.currency()))
	return nil
}
