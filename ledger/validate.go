package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalid matches every *ValidationError via errors.Is.
var ErrInvalid = errors.New("invalid input")

// ValidationError rejects malformed input before it reaches the Store.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// ValidateSymbol checks an instrument symbol.
func ValidateSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return invalid("symbol", "is required")
	}
	if strings.ContainsAny(symbol, " \t\n") {
		return invalid("symbol", "must not contain whitespace")
	}
	return nil
}

// ValidatePrice checks that a price is finite and positive.
func ValidatePrice(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	if v <= 0 {
		return invalid(field, "must be positive")
	}
	return nil
}

// ValidatePercent checks a percentage in (0, 100).
func ValidatePercent(field string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v >= 100 {
		return invalid(field, "must be between 0 and 100")
	}
	return nil
}

// ValidateHoldingSpec checks a new holding.
func ValidateHoldingSpec(spec HoldingSpec) error {
	if err := ValidateSymbol(spec.Symbol); err != nil {
		return err
	}
	if err := ValidatePrice("quantity", spec.Quantity); err != nil {
		return err
	}
	if spec.BuyPrice != 0 {
		if err := ValidatePrice("buy_price", spec.BuyPrice); err != nil {
			return err
		}
	}
	if spec.CurrentPrice != 0 {
		if err := ValidatePrice("current_price", spec.CurrentPrice); err != nil {
			return err
		}
	}
	if spec.StopLoss != nil {
		if err := ValidatePrice("stop_loss", *spec.StopLoss); err != nil {
			return err
		}
	}
	if spec.TakeProfit != nil {
		if err := ValidatePrice("take_profit", *spec.TakeProfit); err != nil {
			return err
		}
	}
	if spec.StopLoss != nil && spec.TakeProfit != nil && *spec.StopLoss >= *spec.TakeProfit {
		return invalid("stop_loss", "must be below take_profit")
	}
	if spec.TrailingStop {
		if err := ValidatePercent("trail_percent", spec.TrailPercent); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTradeSpec checks a trade before it is recorded.
func ValidateTradeSpec(spec TradeSpec) error {
	if err := ValidateSymbol(spec.Symbol); err != nil {
		return err
	}
	switch spec.Side {
	case Buy, Sell, "":
	default:
		return invalid("type", fmt.Sprintf("must be %s or %s, got %q", Buy, Sell, spec.Side))
	}
	if err := ValidatePrice("quantity", spec.Quantity); err != nil {
		return err
	}
	if err := ValidatePrice("entry_price", spec.EntryPrice); err != nil {
		return err
	}
	if spec.ExitPrice != nil {
		if err := ValidatePrice("exit_price", *spec.ExitPrice); err != nil {
			return err
		}
	}
	return nil
}

// ParseSide parses BUY or SELL, case-insensitively.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	}
	return "", invalid("type", fmt.Sprintf("must be %s or %s, got %q", Buy, Sell, s))
}
