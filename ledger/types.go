package ledger

import "time"

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Status is the lifecycle state of a trade.
type Status string

const (
	Open   Status = "open"
	Closed Status = "closed"
)

// DefaultEquityWindow is how many equity snapshots are retained.
const DefaultEquityWindow = 365

// Holding is an open position in one instrument. A BuyPrice of zero means
// the buy price is unknown.
type Holding struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Quantity     float64   `json:"quantity"`
	BuyPrice     float64   `json:"buyPrice"`
	CurrentPrice float64   `json:"currentPrice"`
	BuyDate      time.Time `json:"buyDate"`

	StopLoss   *float64 `json:"stopLoss,omitempty"`
	TakeProfit *float64 `json:"takeProfit,omitempty"`

	TrailingStop bool    `json:"trailingStop,omitempty"`
	TrailPercent float64 `json:"trailPercent,omitempty"`

	// TradeID links the BUY trade opened together with this holding.
	TradeID string `json:"tradeId,omitempty"`
}

// Value is quantity times the last known price.
func (h Holding) Value() float64 { return h.Quantity * h.CurrentPrice }

// Cost is quantity times the average buy price.
func (h Holding) Cost() float64 { return h.Quantity * h.BuyPrice }

// UnrealizedPnL is the paper profit on the holding.
func (h Holding) UnrealizedPnL() float64 {
	return (h.CurrentPrice - h.BuyPrice) * h.Quantity
}

// Trade is a buy or sell execution. Once Status is Closed, ExitPrice,
// ClosedAt and PnL are fixed.
type Trade struct {
	ID         string     `json:"id"`
	Symbol     string     `json:"symbol"`
	Side       Side       `json:"type"`
	Quantity   float64    `json:"quantity"`
	EntryPrice float64    `json:"entryPrice"`
	ExitPrice  *float64   `json:"exitPrice,omitempty"`
	Status     Status     `json:"status"`
	PnL        float64    `json:"pnl"`
	CreatedAt  time.Time  `json:"createdAt"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`
}

// IsClosed reports whether the trade has been closed.
func (t Trade) IsClosed() bool { return t.Status == Closed }

// Snapshot is a timestamped sample of total holdings value.
type Snapshot struct {
	Time  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Settings are user preferences persisted with the ledger.
type Settings struct {
	Currency           string  `json:"currency,omitempty" yaml:"currency,omitempty"`
	DefaultStopPercent float64 `json:"defaultStopPercent,omitempty" yaml:"default_stop_percent,omitempty"`
	EquityWindow       int     `json:"equityWindow,omitempty" yaml:"equity_window,omitempty"`
}

// State is the complete contents of a Store.
type State struct {
	Holdings      []Holding  `json:"holdings"`
	Trades        []Trade    `json:"trades"`
	EquityHistory []Snapshot `json:"equityHistory"`
	Watchlist     []string   `json:"watchlist"`
	Settings      Settings   `json:"settings"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		Holdings:      make([]Holding, len(s.Holdings)),
		Trades:        make([]Trade, len(s.Trades)),
		EquityHistory: append([]Snapshot(nil), s.EquityHistory...),
		Watchlist:     append([]string(nil), s.Watchlist...),
		Settings:      s.Settings,
	}
	for i, h := range s.Holdings {
		out.Holdings[i] = h.clone()
	}
	for i, t := range s.Trades {
		out.Trades[i] = t.clone()
	}
	if out.EquityHistory == nil {
		out.EquityHistory = []Snapshot{}
	}
	if out.Watchlist == nil {
		out.Watchlist = []string{}
	}
	return out
}

func (h Holding) clone() Holding {
	h.StopLoss = clonePrice(h.StopLoss)
	h.TakeProfit = clonePrice(h.TakeProfit)
	return h
}

func (t Trade) clone() Trade {
	t.ExitPrice = clonePrice(t.ExitPrice)
	if t.ClosedAt != nil {
		at := *t.ClosedAt
		t.ClosedAt = &at
	}
	return t
}

func clonePrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Price returns a pointer to v, for the optional price fields.
func Price(v float64) *float64 { return &v }
