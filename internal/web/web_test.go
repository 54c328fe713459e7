package web

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"stock_simulator/internal/domain"
	"stock_simulator/internal/trading"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesRender(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	price := decimal.RequireFromString("120.5")
	data := map[string]any{
		"Title":    "Test",
		"LoggedIn": true,
		"Flash":    "Bought!",
		"Code":     400,
		"Message":  "nope",
		"Symbols":  []string{"NFLX"},
		"Quote":    domain.Quote{Symbol: "NFLX", Name: "Netflix Inc.", Price: price},
		"Portfolio": &trading.Portfolio{
			Rows: []trading.Row{
				{Symbol: "NFLX", Name: "Netflix Inc.", Shares: 2, Price: price, Value: price.Mul(decimal.NewFromInt(2))},
				{Symbol: "GONE", Name: "GONE", Shares: 1, Err: errors.New("lookup failed")},
			},
			Cash:       decimal.NewFromInt(1000),
			Total:      decimal.RequireFromString("1241"),
			Incomplete: true,
		},
		"History": &trading.HistoryPage{
			Transactions: []domain.Transaction{{Symbol: "NFLX", Price: price, Shares: -2, CreatedAt: time.Now()}},
			Page:         1,
			PageSize:     20,
			Total:        1,
			TotalPages:   1,
		},
	}

	pages := []string{"apology.html", "index.html", "buy.html", "sell.html", "quote.html", "quoted.html",
		"topup.html", "history.html", "login.html", "register.html"}
	for _, name := range pages {
		var buf bytes.Buffer
		require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data), name)
		assert.Contains(t, buf.String(), "Bought!", name)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index.html", data))
	assert.Contains(t, buf.String(), "$241.00")
	assert.Contains(t, buf.String(), "$1,241.00")
	assert.Contains(t, buf.String(), "price unavailable")

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "history.html", data))
	assert.Contains(t, buf.String(), "Sell")
	assert.Contains(t, buf.String(), "$241.00")
}
