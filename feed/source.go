// Package feed fetches market prices and pushes them into the ledger.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrNoQuote = errors.New("no quote")

// Quote is the last traded price of one symbol.
type Quote struct {
	Symbol string
	Price  float64
	Time   time.Time
}

// Source returns the current quote for a symbol.
type Source interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// StaticSource serves fixed prices.
type StaticSource struct {
	mu     sync.RWMutex
	prices map[string]float64
	now    func() time.Time
}

func NewStaticSource(prices map[string]float64) *StaticSource {
	s := &StaticSource{prices: make(map[string]float64, len(prices)), now: time.Now}
	for k, v := range prices {
		s.prices[k] = v
	}
	return s
}

// Set changes the price served for symbol.
func (s *StaticSource) Set(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = price
}

func (s *StaticSource) Quote(ctx context.Context, symbol string) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, err
	}
	s.mu.RLock()
	p, ok := s.prices[symbol]
	s.mu.RUnlock()
	if !ok {
		return Quote{}, fmt.Errorf("%s: %w", symbol, ErrNoQuote)
	}
	return Quote{Symbol: symbol, Price: p, Time: s.now()}, nil
}
