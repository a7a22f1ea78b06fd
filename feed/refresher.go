package feed

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/folio/internal/logging"
	"github.com/rustyeddy/folio/ledger"
	"github.com/rustyeddy/folio/metrics"
)

const DefaultInterval = 30 * time.Second

// Refresher reprices the held symbols from a Source and records an equity
// snapshot after each pass. A nil Log uses the logger carried by the
// context.
type Refresher struct {
	Store    *ledger.Store
	Source   Source
	Interval time.Duration
	Log      logrus.FieldLogger
}

// Refresh is the outcome of one pass.
type Refresh struct {
	Priced   []Quote
	Failed   map[string]error
	Snapshot ledger.Snapshot
	Alerts   []metrics.Alert
}

func NewRefresher(store *ledger.Store, src Source, log logrus.FieldLogger) *Refresher {
	return &Refresher{
		Store:    store,
		Source:   src,
		Interval: DefaultInterval,
		Log:      log,
	}
}

// RefreshOnce quotes each distinct held symbol once, applies the prices and
// takes a snapshot. A symbol that fails to quote keeps its old price.
// Only a cancelled context aborts the pass.
func (r *Refresher) RefreshOnce(ctx context.Context) (Refresh, error) {
	out := Refresh{Failed: map[string]error{}}
	log := r.logger(ctx)

	for _, sym := range heldSymbols(r.Store.Holdings()) {
		q, err := r.Source.Quote(ctx, sym)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return out, ctxErr
			}
			log.WithError(err).WithField("symbol", sym).Warn("quote failed")
			out.Failed[sym] = err
			continue
		}
		if q.Price <= 0 {
			log.WithField("symbol", sym).Warn("ignoring non-positive quote")
			out.Failed[sym] = errors.New("non-positive price")
			continue
		}

		n := r.Store.UpdatePrice(sym, q.Price)
		log.WithFields(logrus.Fields{
			"symbol":   sym,
			"price":    q.Price,
			"holdings": n,
		}).Debug("priced")
		out.Priced = append(out.Priced, q)
	}

	out.Snapshot = r.Store.TakeEquitySnapshot()

	out.Alerts = metrics.Alerts(r.Store.Holdings())
	for _, a := range out.Alerts {
		log.WithFields(logrus.Fields{
			"holding": a.HoldingID,
			"symbol":  a.Symbol,
			"price":   a.Price,
			"level":   a.Level,
		}).Warnf("%s reached", a.Kind)
	}

	log.WithFields(logrus.Fields{
		"priced": len(out.Priced),
		"failed": len(out.Failed),
		"value":  out.Snapshot.Value,
	}).Info("refresh complete")
	return out, nil
}

// Run refreshes immediately and then on every interval until ctx is done.
// It returns nil when the context is cancelled.
func (r *Refresher) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := r.RefreshOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func heldSymbols(hs []ledger.Holding) []string {
	seen := make(map[string]bool, len(hs))
	var out []string
	for _, h := range hs {
		if seen[h.Symbol] {
			continue
		}
		seen[h.Symbol] = true
		out = append(out, h.Symbol)
	}
	return out
}

func (r *Refresher) logger(ctx context.Context) logrus.FieldLogger {
	if r.Log != nil {
		return r.Log
	}
	return logging.FromContext(ctx)
}
