package domain

import "github.com/shopspring/decimal"

// Quote is a point-in-time price for a symbol. It is never persisted.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}
