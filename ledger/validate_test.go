package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHoldingSpec(t *testing.T) {
	t.Parallel()

	valid := HoldingSpec{Symbol: "AAPL", Quantity: 10, BuyPrice: 100}

	tests := []struct {
		name   string
		mutate func(*HoldingSpec)
		field  string
	}{
		{"valid", func(*HoldingSpec) {}, ""},
		{"unknown buy price is fine", func(s *HoldingSpec) { s.BuyPrice = 0 }, ""},
		{"missing symbol", func(s *HoldingSpec) { s.Symbol = " " }, "symbol"},
		{"symbol with space", func(s *HoldingSpec) { s.Symbol = "A B" }, "symbol"},
		{"zero quantity", func(s *HoldingSpec) { s.Quantity = 0 }, "quantity"},
		{"nan quantity", func(s *HoldingSpec) { s.Quantity = math.NaN() }, "quantity"},
		{"negative buy", func(s *HoldingSpec) { s.BuyPrice = -1 }, "buy_price"},
		{"stop above target", func(s *HoldingSpec) {
			s.StopLoss = Price(120)
			s.TakeProfit = Price(110)
		}, "stop_loss"},
		{"trail without percent", func(s *HoldingSpec) { s.TrailingStop = true }, "trail_percent"},
		{"trail too wide", func(s *HoldingSpec) {
			s.TrailingStop = true
			s.TrailPercent = 100
		}, "trail_percent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := valid
			tt.mutate(&spec)
			err := ValidateHoldingSpec(spec)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateTradeSpec(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateTradeSpec(TradeSpec{Symbol: "AAPL", Side: Sell, Quantity: 1, EntryPrice: 10, ExitPrice: Price(11)}))
	assert.ErrorIs(t, ValidateTradeSpec(TradeSpec{Symbol: "AAPL", Side: "HOLD", Quantity: 1, EntryPrice: 10}), ErrInvalid)
	assert.ErrorIs(t, ValidateTradeSpec(TradeSpec{Symbol: "AAPL", Quantity: 1, EntryPrice: 0}), ErrInvalid)
	assert.ErrorIs(t, ValidateTradeSpec(TradeSpec{Symbol: "AAPL", Quantity: 1, EntryPrice: 1, ExitPrice: Price(math.Inf(1))}), ErrInvalid)
}

func TestParseSide(t *testing.T) {
	t.Parallel()

	side, err := ParseSide(" sell ")
	require.NoError(t, err)
	assert.Equal(t, Sell, side)

	_, err = ParseSide("short")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidatePercent(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePercent("p", 5))
	assert.Error(t, ValidatePercent("p", 0))
	assert.Error(t, ValidatePercent("p", 100))
	assert.Error(t, ValidatePercent("p", math.NaN()))
}
