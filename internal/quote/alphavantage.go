package quote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"stock_simulator/internal/domain"

	"github.com/shopspring/decimal"
)

const DefaultAlphaVantageBaseURL = "https://www.alphavantage.co"

// AlphaVantage uses the GLOBAL_QUOTE function. The endpoint carries no
// company name, so the symbol doubles as the name.
type AlphaVantage struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type alphaVantageResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

func NewAlphaVantage(baseURL, apiKey string, client *http.Client) *AlphaVantage {
	if baseURL == "" {
		baseURL = DefaultAlphaVantageBaseURL
	}
	return &AlphaVantage{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: orDefault(client)}
}

func (p *AlphaVantage) Lookup(ctx context.Context, symbol string) (domain.Quote, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return domain.Quote{}, unknown(symbol, err.Error())
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Quote{}, unknown(symbol, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Quote{}, unknown(symbol, resp.Status)
	}
	var result alphaVantageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.Quote{}, unknown(symbol, "decode: "+err.Error())
	}
	// An unknown symbol comes back as an empty "Global Quote" object
	if result.GlobalQuote.Price == "" {
		return domain.Quote{}, unknown(symbol, "not found")
	}
	price, err := decimal.NewFromString(result.GlobalQuote.Price)
	if err != nil || !price.IsPositive() {
		return domain.Quote{}, unknown(symbol, "bad price "+result.GlobalQuote.Price)
	}
	sym := Normalize(result.GlobalQuote.Symbol)
	return domain.Quote{Symbol: sym, Name: sym, Price: price}, nil
}
