package trading

import (
	"context"

	"stock_simulator/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Row is one holding valued at the current price. Err is set when the
// quote lookup failed; Price and Value are then zero.
type Row struct {
	Symbol string
	Name   string
	Shares int64
	Price  decimal.Decimal
	Value  decimal.Decimal
	Err    error
}

// Portfolio is the user's holdings plus cash. Total leaves out rows whose
// price could not be fetched, in which case Incomplete is set.
type Portfolio struct {
	Rows       []Row
	Cash       decimal.Decimal
	Total      decimal.Decimal
	Incomplete bool
}

// Portfolio values every holding of userID at a fresh quote
func (s *Service) Portfolio(ctx context.Context, userID uint) (*Portfolio, error) {
	cash, err := s.Cash(ctx, userID)
	if err != nil {
		return nil, err
	}
	var holdings []domain.Holding
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("symbol").Find(&holdings).Error; err != nil {
		return nil, err
	}

	p := &Portfolio{Rows: make([]Row, 0, len(holdings)), Cash: cash, Total: cash}
	for _, h := range holdings {
		row := Row{Symbol: h.Symbol, Name: h.Symbol, Shares: h.Shares}
		q, err := s.Quote(ctx, h.Symbol)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"symbol":  h.Symbol,
				"error":   err.Error(),
			}).Warn("Portfolio quote failed")
			row.Err = err
			p.Incomplete = true
			p.Rows = append(p.Rows, row)
			continue
		}
		row.Name = q.Name
		row.Price = q.Price
		row.Value = q.Price.Mul(decimal.NewFromInt(h.Shares))
		p.Total = p.Total.Add(row.Value)
		p.Rows = append(p.Rows, row)
	}
	return p, nil
}
