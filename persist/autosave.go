package persist

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/folio/ledger"
)

// AutoSaver writes the ledger through a Backend after every mutation. Save
// failures are logged and kept for Err; they never reach the caller that
// mutated the store.
type AutoSaver struct {
	backend Backend
	log     logrus.FieldLogger

	mu      sync.Mutex
	lastErr error
	saves   int
}

func NewAutoSaver(b Backend, log logrus.FieldLogger) *AutoSaver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AutoSaver{backend: b, log: log}
}

// OnLedgerChange implements ledger.ChangeListener.
func (a *AutoSaver) OnLedgerChange(st ledger.State) {
	err := a.backend.Save(context.Background(), st)

	a.mu.Lock()
	a.lastErr = err
	if err == nil {
		a.saves++
	}
	a.mu.Unlock()

	if err != nil {
		a.log.WithError(err).Error("save ledger")
		return
	}
	a.log.WithFields(logrus.Fields{
		"holdings": len(st.Holdings),
		"trades":   len(st.Trades),
	}).Debug("ledger saved")
}

// Err returns the error from the most recent save, or nil.
func (a *AutoSaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Saves counts successful saves.
func (a *AutoSaver) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}
