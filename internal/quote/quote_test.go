package quote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"stock_simulator/internal/config"
	"stock_simulator/internal/domain"

	finance "github.com/piquette/finance-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIEXLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pk_test", r.URL.Query().Get("token"))
		switch r.URL.Path {
		case "/stock/nflx/quote":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"companyName":"Netflix Inc.","latestPrice":318.52,"symbol":"NFLX"}`))
		default:
			http.Error(w, "Unknown symbol", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewIEX(srv.URL, "pk_test", srv.Client())

	q, err := p.Lookup(context.Background(), "nflx")
	require.NoError(t, err)
	assert.Equal(t, "NFLX", q.Symbol)
	assert.Equal(t, "Netflix Inc.", q.Name)
	assert.Equal(t, "318.52", q.Price.String())

	_, err = p.Lookup(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestIEXNullPriceIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"companyName":"Delisted","latestPrice":null,"symbol":"OLD"}`))
	}))
	defer srv.Close()

	_, err := NewIEX(srv.URL, "k", srv.Client()).Lookup(context.Background(), "OLD")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestIEXUnreachableIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewIEX(url, "k", nil).Lookup(context.Background(), "AAPL")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestAlphaVantageLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		if r.URL.Query().Get("symbol") == "IBM" {
			_, _ = w.Write([]byte(`{"Global Quote":{"01. symbol":"IBM","05. price":"142.1500"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"Global Quote":{}}`))
	}))
	defer srv.Close()

	p := NewAlphaVantage(srv.URL, "demo", srv.Client())

	q, err := p.Lookup(context.Background(), "IBM")
	require.NoError(t, err)
	assert.Equal(t, domain.Quote{Symbol: "IBM", Name: "IBM", Price: q.Price}, q)
	assert.Equal(t, "142.15", q.Price.String())

	_, err = p.Lookup(context.Background(), "NOPE")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestYahooLookup(t *testing.T) {
	p := &Yahoo{get: func(symbol string) (*finance.Quote, error) {
		switch symbol {
		case "MSFT":
			return &finance.Quote{Symbol: "MSFT", ShortName: "Microsoft Corporation", RegularMarketPrice: 410.5}, nil
		case "BOOM":
			return nil, errors.New("remote error")
		}
		return nil, nil
	}}

	q, err := p.Lookup(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, "Microsoft Corporation", q.Name)
	assert.Equal(t, "410.5", q.Price.String())

	_, err = p.Lookup(context.Background(), "BOOM")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
	_, err = p.Lookup(context.Background(), "NONE")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestStatic(t *testing.T) {
	s := NewStatic(domain.Quote{Symbol: "aapl", Name: "Apple"})

	q, err := s.Lookup(context.Background(), " AAPL ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)

	s.Remove("AAPL")
	_, err = s.Lookup(context.Background(), "AAPL")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestNew(t *testing.T) {
	for name, want := range map[string]any{"iex": &IEX{}, "": &IEX{}, "alphavantage": &AlphaVantage{}, "Yahoo": &Yahoo{}} {
		p, err := New(&config.Config{QuoteProvider: name, APIKey: "k"})
		require.NoError(t, err, name)
		assert.IsType(t, want, p, name)
	}

	_, err := New(&config.Config{QuoteProvider: "bloomberg"})
	assert.Error(t, err)
}
