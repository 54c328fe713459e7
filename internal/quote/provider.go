// Package quote looks up current stock prices from an external provider.
package quote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stock_simulator/internal/config"
	"stock_simulator/internal/domain"
)

// Provider resolves a ticker symbol to a current quote.
// Failures wrap domain.ErrUnknownSymbol.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (domain.Quote, error)
}

// New builds the provider selected by cfg.QuoteProvider
func New(cfg *config.Config) (Provider, error) {
	client := &http.Client{Timeout: cfg.QuoteTimeout}
	switch strings.ToLower(cfg.QuoteProvider) {
	case "iex", "":
		return NewIEX(cfg.QuoteBaseURL, cfg.APIKey, client), nil
	case "alphavantage":
		return NewAlphaVantage(cfg.QuoteBaseURL, cfg.APIKey, client), nil
	case "yahoo":
		return NewYahoo(), nil
	default:
		return nil, fmt.Errorf("unsupported QUOTE_PROVIDER %q", cfg.QuoteProvider)
	}
}

// Normalize trims and upper-cases a symbol as typed by a user.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func unknown(symbol, reason string) error {
	return fmt.Errorf("%w %q: %s", domain.ErrUnknownSymbol, symbol, reason)
}

const defaultTimeout = 10 * time.Second

func orDefault(client *http.Client) *http.Client {
	if client == nil {
		return &http.Client{Timeout: defaultTimeout}
	}
	return client
}
