package api

import (
	"net/http"                            // HTTP status codes
	"stock_simulator/internal/account"    // Registration and login
	"stock_simulator/internal/middleware" // Session cookie name
	"stock_simulator/internal/session"    // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the registration form
type RegisterRequest struct {
	Username     string `form:"username"`     // Desired username
	Password     string `form:"password"`     // Password
	Confirmation string `form:"confirmation"` // Must equal Password
}

// LoginRequest is the login form
type LoginRequest struct {
	Username string `form:"username"` // Username
	Password string `form:"password"` // Password
}

// RegisterFormHandler shows the registration form
func RegisterFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "register.html", "Register", nil)
	}
}

// RegisterHandler creates an account and logs the new user in
func RegisterHandler(accounts *account.Service, sessions *session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			apology(c, http.StatusBadRequest, "invalid request")
			return
		}
		user, err := accounts.Register(c.Request.Context(), req.Username, req.Password, req.Confirmation)
		if err != nil {
			respondError(c, "register", err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User registered")
		if !startSession(c, sessions, user.ID, secure) {
			return
		}
		redirectWithFlash(c, "/", "Successfully registered!")
	}
}

// LoginFormHandler forgets any current session and shows the login form
func LoginFormHandler(sessions *session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		endSession(c, sessions, secure)
		render(c, http.StatusOK, "login.html", "Log In", nil)
	}
}

// LoginHandler authenticates a user and sets the session cookie
func LoginHandler(accounts *account.Service, sessions *session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		endSession(c, sessions, secure) // Forget any user_id
		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			apology(c, http.StatusBadRequest, "invalid request")
			return
		}
		user, err := accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, "login", err)
			return
		}
		if !startSession(c, sessions, user.ID, secure) {
			return
		}
		redirectWithFlash(c, "/", "Welcome back, "+user.Username)
	}
}

// LogoutHandler ends the session and returns to the home page
func LogoutHandler(sessions *session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		endSession(c, sessions, secure)
		c.Redirect(http.StatusFound, "/")
	}
}

// startSession creates a session and sets its cookie, rendering an error
// page and returning false on failure
func startSession(c *gin.Context, sessions *session.Store, userID uint, secure bool) bool {
	token, err := sessions.Create(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "create session", err)
		return false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(sessions.TTL().Seconds()), "/", "", secure, true)
	return true
}

// endSession drops the current session, if any, and clears its cookie
func endSession(c *gin.Context, sessions *session.Store, secure bool) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err != nil || token == "" {
		return // No session cookie
	}
	if err := sessions.Destroy(c.Request.Context(), token); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to destroy session")
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secure, true)
}
