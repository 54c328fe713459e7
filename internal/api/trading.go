package api

import (
	"context"                             // Context for Redis operations
	"fmt"                                 // Flash message formatting
	"net/http"                            // HTTP status codes
	"stock_simulator/internal/middleware" // Session context helpers
	"stock_simulator/internal/trading"    // Ledger operations
	"stock_simulator/internal/utils"      // Formatting and cache helpers
	"time"                                // Timestamps for logs

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// TradeRequest is the buy and sell form
type TradeRequest struct {
	Symbol string `form:"symbol"` // Ticker symbol
	Shares string `form:"shares"` // Whole number of shares, parsed by the handler
}

// QuoteRequest is the quote form
type QuoteRequest struct {
	Symbol string `form:"symbol"` // Ticker symbol
}

// TopUpRequest is the top-up form
type TopUpRequest struct {
	Amount string `form:"amount"` // Cash to add
}

// IndexHandler shows the user's portfolio
func IndexHandler(svc *trading.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c) // Set by SessionAuthMiddleware
		portfolio, err := svc.Portfolio(c.Request.Context(), userID)
		if err != nil {
			respondError(c, "portfolio", err)
			return
		}
		render(c, http.StatusOK, "index.html", "Portfolio", gin.H{"Portfolio": portfolio})
	}
}

// QuoteFormHandler shows the quote form
func QuoteFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "quote.html", "Quote", nil)
	}
}

// QuoteHandler looks up and shows the current price of a symbol
func QuoteHandler(svc *trading.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuoteRequest
		if err := c.ShouldBind(&req); err != nil {
			apology(c, http.StatusBadRequest, "invalid request")
			return
		}
		q, err := svc.Quote(c.Request.Context(), req.Symbol)
		if err != nil {
			respondError(c, "quote", err)
			return
		}
		render(c, http.StatusOK, "quoted.html", "Quoted", gin.H{"Quote": q})
	}
}

// BuyFormHandler shows the buy form
func BuyFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "buy.html", "Buy", nil)
	}
}

// BuyHandler purchases shares at the current price
func BuyHandler(svc *trading.Service, rdb redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var req TradeRequest
		if err := c.ShouldBind(&req); err != nil {
			apology(c, http.StatusBadRequest, "invalid request")
			return
		}
		shares, err := trading.ParseShares(req.Shares)
		if err != nil {
			respondError(c, "buy", err)
			return
		}
		receipt, err := svc.Buy(c.Request.Context(), userID, req.Symbol, shares)
		if err != nil {
			logTrade("buy", userID, req.Symbol, shares, err)
			respondError(c, "buy", err)
			return
		}
		logTrade("buy", userID, receipt.Symbol, shares, nil)
		invalidateHistory(c.Request.Context(), rdb, userID)
		redirectWithFlash(c, "/", fmt.Sprintf("Bought %d %s shares for %s", shares, receipt.Name, utils.USD(receipt.Total)))
	}
}

// SellFormHandler shows the sell form with the symbols the user holds
func SellFormHandler(svc *trading.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		symbols, err := svc.OwnedSymbols(c.Request.Context(), userID)
		if err != nil {
			respondError(c, "sell form", err)
			return
		}
		render(c, http.StatusOK, "sell.html", "Sell", gin.H{"Symbols": symbols})
	}
}

// SellHandler sells held shares at the current price
func SellHandler(svc *trading.Service, rdb redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var req TradeRequest
		if err := c.ShouldBind(&req); err != nil {
			apology(c, http.StatusBadRequest, "invalid request")
			return
		}
		shares, err := trading.ParseShares(req.Shares)
		if err != nil {
			respondError(c, "sell", err)
			return
		}
		receipt, err := svc.Sell(c.Request.Context(), userID, req.Symbol, shares)
		if err != nil {
			logTrade("sell", userID, req.Symbol, shares, err)
			respondError(c, "sell", err)
			return
		}
		logTrade("sell", userID, receipt.Symbol, shares, nil)
		invalidateHistory(c.Request.Context(), rdb, userID)
		redirectWithFlash(c, "/", fmt.Sprintf("Sold %d %s shares for %s", shares, receipt.Name, utils.USD(receipt.Total)))
	}
}

// TopUpFormHandler shows the top-up form
func TopUpFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "topup.html", "Top up", nil)
	}
}

// TopUpHandler adds cash to the user's balance
func TopUpHandler(svc *trading.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var req TopUpRequest
		if err := c.ShouldBind(&req); err != nil {
			apology(c, http.StatusBadRequest, "invalid request")
			return
		}
		amount, err := trading.ParseAmount(req.Amount)
		if err != nil {
			respondError(c, "top up", err)
			return
		}
		added, err := svc.TopUp(c.Request.Context(), userID, amount)
		if err != nil {
			respondError(c, "top up", err)
			return
		}
		// Log successful top-up
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,                          // User ID
			"amount":    added.String(),                  // Amount added
			"type":      "topup",                         // Operation type
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Top-up transaction")
		redirectWithFlash(c, "/", utils.USD(added)+" added to your account!")
	}
}

// logTrade records the outcome of a buy or sell
func logTrade(kind string, userID uint, symbol string, shares int64, err error) {
	fields := logrus.Fields{
		"user_id":   userID,                          // User ID
		"symbol":    symbol,                          // Ticker symbol
		"shares":    shares,                          // Share count
		"type":      kind,                            // buy or sell
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}
	if err != nil {
		fields["error"] = err.Error()
		logrus.WithFields(fields).Warn("Trade rejected")
		return
	}
	logrus.WithFields(fields).Info("Trade executed")
}

// invalidateHistory drops the cached history pages of userID
func invalidateHistory(ctx context.Context, rdb redis.Cmdable, userID uint) {
	if err := utils.DeleteCache(ctx, rdb, historyKey(userID)); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("History cache invalidation failed")
	}
}
