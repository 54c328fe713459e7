package api

import (
	"net/http"                            // HTTP status codes
	"stock_simulator/internal/account"    // Registration and login
	"stock_simulator/internal/middleware" // Custom middleware
	"stock_simulator/internal/session"    // Session store
	"stock_simulator/internal/trading"    // Ledger operations
	"stock_simulator/internal/web"        // HTML templates

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps are the services the HTTP layer needs
type Deps struct {
	DB       *gorm.DB         // Database, pinged by /healthz
	Redis    redis.Cmdable    // Session store and history cache
	Accounts *account.Service // Registration and login
	Trading  *trading.Service // Buy, sell, top-up, quote, views
	Sessions *session.Store   // Session tokens
	Secure   bool             // Set the Secure flag on cookies
}

// NewRouter builds the gin engine with every route of the application
func NewRouter(d Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Logger())
	// Render panics as a generic error page
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithField("panic", recovered).Error("Handler panicked")
		apology(c, http.StatusInternalServerError, "internal server error")
		c.Abort()
	}))
	r.Use(middleware.NoCacheMiddleware())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}

	r.GET("/healthz", HealthHandler(d.DB, d.Redis)) // Liveness endpoint

	// Auth routes
	r.GET("/register", RegisterFormHandler())                              // Registration form
	r.POST("/register", RegisterHandler(d.Accounts, d.Sessions, d.Secure)) // Registration endpoint
	r.GET("/login", LoginFormHandler(d.Sessions, d.Secure))                // Login form
	r.POST("/login", LoginHandler(d.Accounts, d.Sessions, d.Secure))       // Login endpoint
	r.GET("/logout", LogoutHandler(d.Sessions, d.Secure))                  // Logout endpoint

	// Trading routes (protected by the session cookie)
	auth := r.Group("/")
	auth.Use(middleware.SessionAuthMiddleware(d.Sessions))
	auth.GET("", IndexHandler(d.Trading))                   // Portfolio
	auth.GET("quote", QuoteFormHandler())                   // Quote form
	auth.POST("quote", QuoteHandler(d.Trading))             // Quote lookup
	auth.GET("buy", BuyFormHandler())                       // Buy form
	auth.POST("buy", BuyHandler(d.Trading, d.Redis))        // Buy endpoint
	auth.GET("sell", SellFormHandler(d.Trading))            // Sell form
	auth.POST("sell", SellHandler(d.Trading, d.Redis))      // Sell endpoint
	auth.GET("topup", TopUpFormHandler())                   // Top-up form
	auth.POST("topup", TopUpHandler(d.Trading))             // Top-up endpoint
	auth.GET("history", HistoryHandler(d.Trading, d.Redis)) // Transaction history

	r.NoRoute(func(c *gin.Context) {
		apology(c, http.StatusNotFound, "not found")
	})
	return r, nil
}
