package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// LoginPath is where anonymous callers are sent
const LoginPath = "/login"

// RequireUser redirects anonymous requests to the login page
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check that the session middleware resolved someone
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusSeeOther, LoginPath) // No error message, just go log in
			c.Abort()
			return
		}
		c.Next() // Identity present, proceed
	}
}
