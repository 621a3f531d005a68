package middleware

import (
	"errors"                   // Error comparison
	"todo_app/internal/db"     // Persistence interface
	"todo_app/internal/domain" // Importing domain models
	"todo_app/internal/utils"  // Session token helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const (
	// UserCookie carries the identity token
	UserCookie = "user_id"
	// userKey is where the resolved user is stored in the gin context
	userKey = "user"
)

// SessionMiddleware resolves the identity cookie to a user.
// Missing, invalid or stale cookies leave the request anonymous; it never aborts.
func SessionMiddleware(store db.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(UserCookie) // Read identity cookie
		// No cookie means anonymous
		if err != nil || token == "" {
			c.Next()
			return
		}
		userID, err := utils.ParseSessionToken(token, secret) // Validate the token
		if err != nil {
			c.Next() // Unusable token, stay anonymous
			return
		}
		user, err := store.FindUserByID(c.Request.Context(), userID) // Look the user up
		if err != nil {
			// Deleted users are simply anonymous; anything else is worth a log line
			if !errors.Is(err, db.ErrNotFound) {
				logrus.WithFields(logrus.Fields{
					"user_id": userID,      // User ID from the token
					"error":   err.Error(), // Error message
				}).Error("Session lookup failed")
			}
			c.Next()
			return
		}
		c.Set(userKey, user) // Store user in context
		c.Next()             // Proceed to the next handler
	}
}

// CurrentUser returns the resolved user, or false for anonymous requests
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
