package trading

import (
	"strconv"
	"strings"

	"stock_simulator/internal/domain"

	"github.com/shopspring/decimal"
)

// ParseShares reads a whole, positive share count from a form value
func ParseShares(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.Invalid("shares", "must enter a number of shares")
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return 0, domain.Invalid("shares", "shares must be a whole number of at least 1")
	}
	return n, nil
}

// ParseAmount reads a cash amount from a form value
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, domain.Invalid("amount", "please enter the amount you want to add")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.Invalid("amount", "amount must be a number")
	}
	return amount, nil
}
