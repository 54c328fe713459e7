package domain

import "github.com/shopspring/decimal"

// User Model
type User struct {
	ID       uint            `gorm:"primaryKey"`                            // Primary key
	Username string          `gorm:"size:64;uniqueIndex;not null"`          // Unique username, case-sensitive
	Password string          `gorm:"not null" json:"-"`                     // Bcrypt hash, never the raw password
	Cash     decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"` // Cash balance
}
