package api

import (
	"errors"                       // Error comparison
	"net/http"                     // HTTP status codes
	"todo_app/internal/db"         // Persistence interface
	"todo_app/internal/domain"     // Importing domain models
	"todo_app/internal/middleware" // Identity cookie name
	"todo_app/internal/utils"      // Password and token helpers
	"todo_app/internal/web"        // Page templates

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Inline form errors
const (
	ErrMsgInvalidCredentials = "Invalid credentials"
	ErrMsgUsernameTaken      = "Username taken"
	ErrMsgMissingFields      = "Username and password are required"
)

// CredentialsForm is the login and signup form
type CredentialsForm struct {
	Username string `form:"username" binding:"required"` // Username must be provided
	Password string `form:"password" binding:"required"` // Password must be provided
}

// LoginPageHandler renders the login form
func LoginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, web.LoginPage, gin.H{"title": "Log in"})
	}
}

// SignupPageHandler renders the signup form
func SignupPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, web.SignupPage, gin.H{"title": "Sign up"})
	}
}

// SignupHandler registers a new user and sends them to the login page
func SignupHandler(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form CredentialsForm // Bind form to struct
		if err := c.ShouldBind(&form); err != nil {
			// Missing fields, show the form again
			renderSignup(c, form.Username, ErrMsgMissingFields)
			return
		}
		ctx := c.Request.Context() // Request scoped unit of work
		// Reject usernames that are already registered
		if _, err := store.FindUserByUsername(ctx, form.Username); err == nil {
			renderSignup(c, form.Username, ErrMsgUsernameTaken)
			return
		} else if !errors.Is(err, db.ErrNotFound) {
			logrus.WithFields(logrus.Fields{
				"username": form.Username, // Requested username
				"error":    err.Error(),   // Error message
			}).Error("Signup lookup failed")
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		// Hash the password and create the user
		hash, err := utils.HashPassword(form.Password)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to hash password")
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		user := domain.User{Username: form.Username, Password: hash}
		// Attempt to create the user in the database
		if err := store.CreateUser(ctx, &user); err != nil {
			// Lost a race against a concurrent signup for the same name
			if errors.Is(err, db.ErrDuplicateUsername) {
				renderSignup(c, form.Username, ErrMsgUsernameTaken)
				return
			}
			logrus.WithFields(logrus.Fields{
				"username": form.Username, // Requested username
				"error":    err.Error(),   // Error message
			}).Error("Failed to create user")
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User registered") // Log registration
		c.Redirect(http.StatusSeeOther, middleware.LoginPath) // Go log in
	}
}

// LoginHandler checks credentials and sets the identity cookie
func LoginHandler(store db.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form CredentialsForm // Bind form to struct
		if err := c.ShouldBind(&form); err != nil {
			renderLogin(c, form.Username, ErrMsgInvalidCredentials)
			return
		}
		// Fetch user from database
		user, err := store.FindUserByUsername(c.Request.Context(), form.Username)
		if err != nil {
			if !errors.Is(err, db.ErrNotFound) {
				logrus.WithField("error", err.Error()).Error("Login lookup failed")
			}
			renderLogin(c, form.Username, ErrMsgInvalidCredentials) // Same message for unknown users
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(user.Password, form.Password) {
			renderLogin(c, form.Username, ErrMsgInvalidCredentials)
			return
		}
		// Generate identity token
		token, err := utils.GenerateSessionToken(user.ID, secret)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to generate session token")
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		// Session cookie: no Max-Age, cleared by logout or browser exit
		c.SetCookie(middleware.UserCookie, token, 0, "/", "", false, true)
		c.Redirect(http.StatusSeeOther, "/") // Go to dashboard
	}
}

// LogoutHandler clears the identity cookie
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(middleware.UserCookie, "", -1, "/", "", false, true) // Expire the cookie
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)            // Back to login
	}
}

func renderLogin(c *gin.Context, username, msg string) {
	c.HTML(http.StatusOK, web.LoginPage, gin.H{"title": "Log in", "username": username, "error": msg})
}

func renderSignup(c *gin.Context, username, msg string) {
	c.HTML(http.StatusOK, web.SignupPage, gin.H{"title": "Sign up", "username": username, "error": msg})
}
