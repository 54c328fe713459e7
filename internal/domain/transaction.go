package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction Model, append-only
type Transaction struct {
	ID        uint            `gorm:"primaryKey"`                  // Primary key
	UserID    uint            `gorm:"not null;index"`              // Owner
	Symbol    string          `gorm:"size:16;not null"`            // Ticker symbol
	Price     decimal.Decimal `gorm:"type:decimal(20,4);not null"` // Price per share at execution
	Shares    int64           `gorm:"not null"`                    // Positive for buy, negative for sell
	CreatedAt time.Time       `gorm:"autoCreateTime;index"`        // Execution timestamp
}

// IsSell reports whether the transaction removed shares
func (t Transaction) IsSell() bool { return t.Shares < 0 }

// Total is the absolute cash value moved by the transaction
func (t Transaction) Total() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Shares)).Abs()
}
