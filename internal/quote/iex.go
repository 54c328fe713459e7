package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"stock_simulator/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultIEXBaseURL is the IEX Cloud stable API root.
const DefaultIEXBaseURL = "https://cloud.iexapis.com/stable"

// IEX fetches quotes from an IEX Cloud compatible endpoint:
// GET {base}/stock/{symbol}/quote?token={key}
type IEX struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type iexQuote struct {
	CompanyName string          `json:"companyName"`
	LatestPrice decimal.Decimal `json:"latestPrice"`
	Symbol      string          `json:"symbol"`
}

func NewIEX(baseURL, apiKey string, client *http.Client) *IEX {
	if baseURL == "" {
		baseURL = DefaultIEXBaseURL
	}
	return &IEX{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, client: orDefault(client)}
}

func (p *IEX) Lookup(ctx context.Context, symbol string) (domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/stock/%s/quote?token=%s", p.baseURL, url.PathEscape(symbol), url.QueryEscape(p.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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
	var q iexQuote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return domain.Quote{}, unknown(symbol, "decode: "+err.Error())
	}
	if q.Symbol == "" || !q.LatestPrice.IsPositive() {
		return domain.Quote{}, unknown(symbol, "no price")
	}
	return domain.Quote{Symbol: Normalize(q.Symbol), Name: q.CompanyName, Price: q.LatestPrice}, nil
}
