package quote

import (
	"context"
	"sync"

	"stock_simulator/internal/domain"
)

// Static serves quotes from memory. Prices can be changed between lookups.
type Static struct {
	mu     sync.RWMutex
	quotes map[string]domain.Quote
}

func NewStatic(quotes ...domain.Quote) *Static {
	s := &Static{quotes: make(map[string]domain.Quote)}
	for _, q := range quotes {
		s.Set(q)
	}
	return s
}

// Set adds or replaces the quote for q.Symbol
func (s *Static) Set(q domain.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.Symbol = Normalize(q.Symbol)
	s.quotes[q.Symbol] = q
}

// Remove makes symbol unknown
func (s *Static) Remove(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quotes, Normalize(symbol))
}

func (s *Static) Lookup(_ context.Context, symbol string) (domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[Normalize(symbol)]
	if !ok {
		return domain.Quote{}, unknown(symbol, "not found")
	}
	return q, nil
}
