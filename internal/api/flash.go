package api

import (
	"github.com/gin-gonic/gin" // Gin web framework
)

const (
	// FlashCookie carries a one-shot UI notice across a redirect
	FlashCookie = "flash_msg"
	// flashMaxAge is the flash cookie lifetime in seconds
	flashMaxAge = 5
)

// Flash messages shown on the dashboard
const (
	FlashTaskAdded     = "Task added successfully!"
	FlashTaskDeleted   = "Task deleted"
	FlashPastDeadline  = "Error: You cannot add a task for the past!"
	FlashInvalidTask   = "Error: Please provide a title, a valid date and a priority."
	FlashInternalError = "Error: Something went wrong, please try again."
)

// setFlash stores a short-lived message for the next page view
func setFlash(c *gin.Context, msg string) {
	c.SetCookie(FlashCookie, msg, flashMaxAge, "/", "", false, true)
}

// readFlash returns the pending flash message, if any
func readFlash(c *gin.Context) string {
	msg, err := c.Cookie(FlashCookie)
	if err != nil {
		return ""
	}
	return msg
}
