package domain

// Holding Model: a user's current share count in one symbol.
// The row is removed once Shares reaches zero.
type Holding struct {
	ID     uint   `gorm:"primaryKey"`                                            // Primary key
	UserID uint   `gorm:"not null;uniqueIndex:idx_holding_owner_symbol"`         // Owner
	Symbol string `gorm:"size:16;not null;uniqueIndex:idx_holding_owner_symbol"` // Ticker symbol
	Shares int64  `gorm:"not null"`                                              // Always > 0
}
