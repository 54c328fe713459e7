package api

import (
	"net/http"                            // HTTP status codes
	"stock_simulator/internal/middleware" // Session context helpers
	"stock_simulator/internal/trading"    // Ledger operations
	"stock_simulator/internal/utils"      // Cache helpers
	"strconv"                             // String conversion
	"time"                                // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const historyCacheTTL = 60 * time.Second

// historyKey is the Redis hash holding every cached history page of a user
func historyKey(userID uint) string {
	return "history:user:" + strconv.FormatUint(uint64(userID), 10)
}

// HistoryHandler lists the user's transactions, newest first
func HistoryHandler(svc *trading.Service, rdb redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		page, pageSize := trading.PageParams(c.Query("page"), c.Query("page_size")) // Defaults: page 1, 20 per page
		ctx := c.Request.Context()
		key := historyKey(userID)
		field := strconv.Itoa(page) + ":" + strconv.Itoa(pageSize)

		// Try to get from cache
		var cached trading.HistoryPage
		found, err := utils.GetCacheField(ctx, rdb, key, field, &cached)
		if err == nil && found {
			render(c, http.StatusOK, "history.html", "History", gin.H{"History": &cached})
			return
		}

		history, err := svc.History(ctx, userID, page, pageSize)
		if err != nil {
			respondError(c, "history", err)
			return
		}
		// Cache the page, a failure only costs the next request a query
		if err := utils.SetCacheField(ctx, rdb, key, field, history, historyCacheTTL); err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("History cache write failed")
		}
		render(c, http.StatusOK, "history.html", "History", gin.H{"History": history})
	}
}
