package api

import (
	"errors"                              // Error inspection
	"net/http"                            // HTTP status codes
	"stock_simulator/internal/domain"     // Domain errors
	"stock_simulator/internal/middleware" // Session context helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const flashCookie = "flash" // One-shot message shown on the next page

// render executes a page template with the shared layout fields
func render(c *gin.Context, status int, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	_, loggedIn := middleware.UserID(c)
	data["LoggedIn"] = loggedIn
	// Pop the flash message, if any
	if msg, err := c.Cookie(flashCookie); err == nil && msg != "" {
		data["Flash"] = msg
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	c.HTML(status, page, data)
}

// redirectWithFlash stores msg for the next page and redirects to path
func redirectWithFlash(c *gin.Context, path, msg string) {
	c.SetCookie(flashCookie, msg, 60, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, path)
}

// apology renders an error page with status code and message
func apology(c *gin.Context, code int, message string) {
	render(c, code, "apology.html", "Apology", gin.H{"Code": code, "Message": message})
}

// respondError maps an error to an HTTP status and a user-visible message.
// Internal details are logged, never rendered.
func respondError(c *gin.Context, op string, err error) {
	var verr *domain.ValidationError
	var aerr *domain.AuthError
	var perr *domain.PersistenceError
	switch {
	case errors.As(err, &verr):
		apology(c, http.StatusBadRequest, verr.Message)
	case errors.As(err, &aerr):
		apology(c, http.StatusForbidden, aerr.Message)
	case errors.Is(err, domain.ErrNoSuchHolding):
		apology(c, http.StatusForbidden, domain.ErrNoSuchHolding.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		apology(c, http.StatusBadRequest, domain.ErrInsufficientFunds.Error())
	case errors.Is(err, domain.ErrInsufficientShares):
		apology(c, http.StatusBadRequest, domain.ErrInsufficientShares.Error())
	case errors.Is(err, domain.ErrUnknownSymbol):
		// Keep the provider's reason out of the page
		logrus.WithFields(logrus.Fields{"op": op, "error": err.Error()}).Info("Quote lookup failed")
		apology(c, http.StatusBadRequest, domain.ErrUnknownSymbol.Error())
	case errors.As(err, &perr):
		logrus.WithFields(logrus.Fields{"op": op, "error": err.Error()}).Error("Write failed")
		apology(c, http.StatusInternalServerError, "an error occurred, transaction failed")
	default:
		logrus.WithFields(logrus.Fields{"op": op, "error": err.Error()}).Error("Request failed")
		apology(c, http.StatusInternalServerError, "internal server error")
	}
}
