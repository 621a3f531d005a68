// Package web holds the server-rendered views.
package web

import (
	"embed"         // Embedded template files
	"html/template" // HTML templates
)

// Page templates, addressed by file name
const (
	DashboardPage = "index.html"  // Task list
	LoginPage     = "login.html"  // Login form
	SignupPage    = "signup.html" // Signup form
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded view into one set for gin's HTML renderer
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html") // Parse all pages
}
