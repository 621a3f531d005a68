package api

import (
	"context"                      // Health check deadline
	"net/http"                     // HTTP status codes
	"time"                         // Time durations
	"todo_app/internal/db"         // Persistence interface
	"todo_app/internal/middleware" // Session handling
	"todo_app/internal/web"        // Page templates

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Dependencies are the collaborators the HTTP layer needs
type Dependencies struct {
	Store         db.Store      // Persistence interface
	Redis         *redis.Client // Optional task list cache, nil disables it
	Notifier      Notifier      // Fire-and-forget mail dispatch
	SessionSecret string        // Identity cookie signing key
}

// NewRouter builds the gin engine with every route of the application
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	tmpl, err := web.Templates() // Parse embedded views
	if err != nil {
		return nil, err
	}
	r := gin.New()                      // Gin router instance
	r.Use(gin.Logger(), gin.Recovery()) // Request log and panic recovery
	r.SetHTMLTemplate(tmpl)             // Views for c.HTML
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}
	// Every request gets its identity resolved, anonymous or not
	r.Use(middleware.SessionMiddleware(deps.Store, deps.SessionSecret))

	r.GET("/healthz", HealthHandler(deps.Store)) // Liveness probe

	// Auth routes
	r.GET("/login", LoginPageHandler())                            // Login form
	r.POST("/login", LoginHandler(deps.Store, deps.SessionSecret)) // Authenticate
	r.GET("/signup", SignupPageHandler())                          // Signup form
	r.POST("/signup", SignupHandler(deps.Store))                   // Register
	r.GET("/logout", LogoutHandler())                              // Clear identity

	// Task routes (identity required)
	tasks := r.Group("/", middleware.RequireUser())
	tasks.GET("", DashboardHandler(deps.Store, deps.Redis))                  // Dashboard
	tasks.POST("add", AddTaskHandler(deps.Store, deps.Redis, deps.Notifier)) // Create task
	tasks.GET("complete/:id", CompleteTaskHandler(deps.Store, deps.Redis))   // Toggle status
	tasks.GET("delete/:id", DeleteTaskHandler(deps.Store, deps.Redis))       // Delete task

	return r, nil
}

// HealthHandler reports whether the database answers
func HealthHandler(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, "database unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	}
}
