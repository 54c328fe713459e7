package middleware

import (
	"errors"                           // Error inspection
	"net/http"                         // HTTP status codes
	"stock_simulator/internal/session" // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const (
	SessionCookie = "session" // Cookie holding the signed session token
	UserIDKey     = "userID"  // Context key for the authenticated user
)

// SessionAuthMiddleware resolves the session cookie and stores the user id
// in the context. Requests without a live session are sent to /login.
func SessionAuthMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie) // Missing cookie yields ""
		userID, err := store.Resolve(c.Request.Context(), token)
		if errors.Is(err, session.ErrNoSession) {
			// Not logged in, redirect to the login form
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if err != nil {
			// Session store unreachable
			logrus.WithFields(logrus.Fields{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			}).Error("Session lookup failed")
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Set(UserIDKey, userID) // Store userID in context
		c.Next()                 // Proceed to the next handler
	}
}

// UserID returns the authenticated user set by SessionAuthMiddleware
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
