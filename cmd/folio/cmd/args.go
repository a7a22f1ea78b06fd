package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/folio/ledger"
)

func parseNumber(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ledger.ValidationError{Field: field, Msg: fmt.Sprintf("must be a number, got %q", s)}
	}
	return v, nil
}

func parsePrice(field, s string) (float64, error) {
	v, err := parseNumber(field, s)
	if err != nil {
		return 0, err
	}
	return v, ledger.ValidatePrice(field, v)
}

func parseIndex(field, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, &ledger.ValidationError{Field: field, Msg: fmt.Sprintf("must be a non-negative integer, got %q", s)}
	}
	return v, nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, &ledger.ValidationError{Field: field, Msg: fmt.Sprintf("must be YYYY-MM-DD, got %q", s)}
	}
	return t, nil
}

// parseQuote parses SYMBOL=PRICE.
func parseQuote(s string) (string, float64, error) {
	sym, p, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, &ledger.ValidationError{Field: "price", Msg: fmt.Sprintf("want SYMBOL=PRICE, got %q", s)}
	}
	sym = strings.ToUpper(strings.TrimSpace(sym))
	if err := ledger.ValidateSymbol(sym); err != nil {
		return "", 0, err
	}
	price, err := parsePrice("price", p)
	return sym, price, err
}

func normalizeSymbol(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, ledger.ValidateSymbol(s)
}
