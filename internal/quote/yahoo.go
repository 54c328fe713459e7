package quote

import (
	"context"

	"stock_simulator/internal/domain"

	finance "github.com/piquette/finance-go"
	fquote "github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// Yahoo reads quotes through finance-go. It needs no API key.
type Yahoo struct {
	get func(symbol string) (*finance.Quote, error)
}

func NewYahoo() *Yahoo {
	return &Yahoo{get: fquote.Get}
}

func (p *Yahoo) Lookup(ctx context.Context, symbol string) (domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return domain.Quote{}, unknown(symbol, err.Error())
	}
	q, err := p.get(symbol)
	if err != nil {
		return domain.Quote{}, unknown(symbol, err.Error())
	}
	if q == nil || q.RegularMarketPrice <= 0 {
		return domain.Quote{}, unknown(symbol, "not found")
	}
	name := q.ShortName
	if name == "" {
		name = q.Symbol
	}
	return domain.Quote{
		Symbol: Normalize(q.Symbol),
		Name:   name,
		Price:  decimal.NewFromFloat(q.RegularMarketPrice),
	}, nil
}
