// Package trading implements the ledger operations: buying, selling and
// topping up cash, plus the portfolio and history views.
package trading

import (
	"context"
	"errors"
	"fmt"

	"stock_simulator/internal/domain"
	"stock_simulator/internal/quote"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	DB     *gorm.DB
	Quotes quote.Provider
}

func New(db *gorm.DB, quotes quote.Provider) *Service {
	return &Service{DB: db, Quotes: quotes}
}

// Receipt confirms a completed buy or sell
type Receipt struct {
	Symbol string
	Name   string
	Shares int64
	Price  decimal.Decimal // Per share
	Total  decimal.Decimal // Price x Shares
}

// Quote looks up the current price of symbol. It is never cached.
func (s *Service) Quote(ctx context.Context, symbol string) (domain.Quote, error) {
	sym := quote.Normalize(symbol)
	if sym == "" {
		return domain.Quote{}, domain.Invalid("symbol", "must enter a stock symbol")
	}
	q, err := s.Quotes.Lookup(ctx, sym)
	if err != nil {
		if !errors.Is(err, domain.ErrUnknownSymbol) {
			err = fmt.Errorf("%w: %v", domain.ErrUnknownSymbol, err)
		}
		return domain.Quote{}, err
	}
	return q, nil
}

// Buy purchases shares of symbol at the current price.
func (s *Service) Buy(ctx context.Context, userID uint, symbol string, shares int64) (*Receipt, error) {
	if shares < 1 {
		return nil, domain.Invalid("shares", "must purchase one or more shares")
	}
	q, err := s.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	cost := q.Price.Mul(decimal.NewFromInt(shares))

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		if user.Cash.LessThan(cost) {
			return domain.ErrInsufficientFunds
		}
		record := domain.Transaction{UserID: userID, Symbol: q.Symbol, Price: q.Price, Shares: shares}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		// Increment an existing holding, or open a new one on first purchase
		res := tx.Model(&domain.Holding{}).
			Where("user_id = ? AND symbol = ?", userID, q.Symbol).
			Update("shares", gorm.Expr("shares + ?", shares))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&domain.Holding{UserID: userID, Symbol: q.Symbol, Shares: shares}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&domain.User{}).Where("id = ?", userID).
			Update("cash", gorm.Expr("cash - ?", cost)).Error
	})
	if err != nil {
		return nil, persistence("buy", err)
	}
	return &Receipt{Symbol: q.Symbol, Name: q.Name, Shares: shares, Price: q.Price, Total: cost}, nil
}

// Sell sells shares of a held symbol at the current price. Selling the
// whole position removes the holding.
func (s *Service) Sell(ctx context.Context, userID uint, symbol string, shares int64) (*Receipt, error) {
	sym := quote.Normalize(symbol)
	if sym == "" {
		return nil, domain.Invalid("symbol", "please select a stock you own")
	}
	if shares < 1 {
		return nil, domain.Invalid("shares", "must sell one or more shares")
	}
	// Report a missing holding before spending a quote lookup on it
	if _, err := findHolding(s.DB.WithContext(ctx), userID, sym); err != nil {
		return nil, persistence("sell", err)
	}
	q, err := s.Quote(ctx, sym)
	if err != nil {
		return nil, err
	}
	proceeds := q.Price.Mul(decimal.NewFromInt(shares))

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockUser(tx, userID); err != nil {
			return err
		}
		// Re-read under the user lock
		holding, err := findHolding(tx, userID, sym)
		if err != nil {
			return err
		}
		if shares > holding.Shares {
			return domain.ErrInsufficientShares
		}
		if shares == holding.Shares {
			err = tx.Delete(holding).Error
		} else {
			err = tx.Model(holding).Update("shares", gorm.Expr("shares - ?", shares)).Error
		}
		if err != nil {
			return err
		}
		record := domain.Transaction{UserID: userID, Symbol: holding.Symbol, Price: q.Price, Shares: -shares}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Model(&domain.User{}).Where("id = ?", userID).
			Update("cash", gorm.Expr("cash + ?", proceeds)).Error
	})
	if err != nil {
		return nil, persistence("sell", err)
	}
	return &Receipt{Symbol: sym, Name: q.Name, Shares: shares, Price: q.Price, Total: proceeds}, nil
}

// TopUp adds amount, rounded to cents, to the user's cash. Amounts that are
// not positive are rejected.
func (s *Service) TopUp(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, domain.Invalid("amount", "amount must be greater than zero")
	}
	res := s.DB.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).
		Update("cash", gorm.Expr("cash + ?", amount))
	if res.Error != nil {
		return decimal.Zero, &domain.PersistenceError{Op: "top up", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, &domain.PersistenceError{Op: "top up", Err: gorm.ErrRecordNotFound}
	}
	return amount, nil
}

// Cash returns the user's current balance
func (s *Service) Cash(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var user domain.User
	if err := s.DB.WithContext(ctx).Select("id", "cash").First(&user, userID).Error; err != nil {
		return decimal.Zero, err
	}
	return user.Cash, nil
}

// OwnedSymbols lists the symbols the user currently holds
func (s *Service) OwnedSymbols(ctx context.Context, userID uint) ([]string, error) {
	var symbols []string
	err := s.DB.WithContext(ctx).Model(&domain.Holding{}).
		Where("user_id = ?", userID).
		Order("symbol").
		Pluck("symbol", &symbols).Error
	return symbols, err
}

// lockUser reads the user row with a row lock held until the transaction
// ends, serialising trades of the same user.
func lockUser(tx *gorm.DB, userID uint) (*domain.User, error) {
	var user domain.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error
	if err != nil {
		return nil, fmt.Errorf("lock user %d: %w", userID, err)
	}
	return &user, nil
}

func findHolding(db *gorm.DB, userID uint, symbol string) (*domain.Holding, error) {
	var holding domain.Holding
	err := db.Where("user_id = ? AND symbol = ?", userID, symbol).First(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoSuchHolding
	}
	if err != nil {
		return nil, err
	}
	return &holding, nil
}

// persistence passes domain errors through and wraps everything else
func persistence(op string, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientShares),
		errors.Is(err, domain.ErrNoSuchHolding),
		errors.Is(err, domain.ErrUnknownSymbol),
		errors.As(err, &verr):
		return err
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
