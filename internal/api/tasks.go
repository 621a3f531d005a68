package api

import (
	"context"                      // Cache invalidation
	"errors"                       // Error comparison
	"net/http"                     // HTTP status codes
	"strconv"                      // String conversion
	"strings"                      // String manipulation
	"time"                         // Deadline handling
	"todo_app/internal/db"         // Persistence interface
	"todo_app/internal/domain"     // Importing domain models
	"todo_app/internal/middleware" // Current user lookup
	"todo_app/internal/notify"     // Notification messages
	"todo_app/internal/utils"      // Cache helpers
	"todo_app/internal/web"        // Page templates

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// HighPrioritySubject is the subject of the mail sent for new High tasks
const HighPrioritySubject = "High Priority Task"

// Notifier schedules a notification without waiting for it
type Notifier interface {
	Notify(msg notify.Message)
}

// now is the clock used to decide whether a deadline is in the past
var now = time.Now

// AddTaskForm is the new task form
type AddTaskForm struct {
	Title    string `form:"title" binding:"required"`    // Task title
	Deadline string `form:"deadline" binding:"required"` // ISO date, e.g. 2030-01-31
	Priority string `form:"priority" binding:"required"` // Low, Medium or High
}

// DashboardHandler lists the caller's tasks by ascending deadline
func DashboardHandler(store db.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessionUser(c)
		if !ok {
			return
		}
		ctx := c.Request.Context() // Request scoped unit of work
		var tasks []domain.Task    // Tasks to render
		// The listing is cached under the generation read before ListTasks
		version, err := utils.TaskListVersion(ctx, rdb, user.ID)
		cacheable := err == nil
		if err != nil {
			logCacheError(user.ID, err, "Failed to read task cache version")
		}
		found := false
		if cacheable {
			// Try to get from cache
			found, err = utils.GetCache(ctx, rdb, utils.TaskListKey(user.ID, version), &tasks)
			if err != nil {
				logCacheError(user.ID, err, "Failed to read task cache")
			}
		}
		if !found {
			// If not in cache, fetch from DB
			tasks, err = store.ListTasks(ctx, user.ID)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID,     // User ID
					"error":   err.Error(), // Error message
				}).Error("Failed to list tasks")
				c.String(http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if cacheable {
				if err := utils.SetCache(ctx, rdb, utils.TaskListKey(user.ID, version), tasks, utils.TaskListTTL); err != nil {
					logCacheError(user.ID, err, "Failed to cache tasks")
				}
			}
		}
		c.HTML(http.StatusOK, web.DashboardPage, gin.H{
			"title": "My tasks",   // Page title
			"user":  user,         // Logged in user
			"tasks": tasks,        // Ordered tasks
			"flash": readFlash(c), // Pending notice
		})
	}
}

// AddTaskHandler validates and stores a new task, notifying the owner for High priority
func AddTaskHandler(store db.Store, rdb *redis.Client, notifier Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessionUser(c)
		if !ok {
			return
		}
		var form AddTaskForm // Bind form to struct
		if err := c.ShouldBind(&form); err != nil {
			redirectHome(c, FlashInvalidTask)
			return
		}
		priority, ok := domain.ParsePriority(form.Priority)
		title := strings.TrimSpace(form.Title)
		deadline, err := time.Parse(domain.DateLayout, form.Deadline) // Midnight UTC
		if !ok || title == "" || err != nil {
			redirectHome(c, FlashInvalidTask)
			return
		}
		// Reject deadlines strictly before today
		if deadline.Before(today()) {
			redirectHome(c, FlashPastDeadline)
			return
		}
		task := domain.Task{
			Title:    title,                // Task title
			Deadline: deadline,             // Due date
			Priority: priority,             // Priority
			Status:   domain.StatusPending, // New tasks start pending
			OwnerID:  user.ID,              // Owned by the caller
		}
		ctx := c.Request.Context()
		// Save the task
		if err := store.CreateTask(ctx, &task); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create task")
			redirectHome(c, FlashInternalError)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"task_id":  task.ID,       // Task ID
			"priority": task.Priority, // Priority
			"deadline": form.Deadline, // Due date
		}).Info("Task created")
		invalidateTasks(ctx, rdb, user.ID)
		// High priority tasks mail the owner when the username is an address
		if priority == domain.PriorityHigh && user.LooksLikeEmail() {
			notifier.Notify(notify.Message{
				Subject: HighPrioritySubject,
				To:      user.Username,
				Body:    map[string]string{"title": title, "deadline": form.Deadline},
			})
		}
		redirectHome(c, FlashTaskAdded)
	}
}

// CompleteTaskHandler flips a task between Pending and Completed.
// Unknown tasks and tasks of other users are ignored without an error.
func CompleteTaskHandler(store db.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessionUser(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if task, ok := ownedTask(c, store, user.ID); ok {
			next := task.Status.Toggled() // Pending <-> Completed
			switch err := store.UpdateTaskStatus(ctx, task.ID, next); {
			case err == nil:
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID, // User ID
					"task_id": task.ID, // Task ID
					"status":  next,    // New status
				}).Info("Task toggled")
			case !errors.Is(err, db.ErrNotFound): // Deleted meanwhile is fine
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID,     // User ID
					"task_id": task.ID,     // Task ID
					"error":   err.Error(), // Error message
				}).Error("Failed to toggle task")
			}
			invalidateTasks(ctx, rdb, user.ID)
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// DeleteTaskHandler removes a task owned by the caller.
// The confirmation flash is set whether or not anything was deleted.
func DeleteTaskHandler(store db.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessionUser(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if task, ok := ownedTask(c, store, user.ID); ok {
			switch err := store.DeleteTask(ctx, task.ID); {
			case err == nil:
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID, // User ID
					"task_id": task.ID, // Task ID
				}).Info("Task deleted")
			case !errors.Is(err, db.ErrNotFound):
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID,     // User ID
					"task_id": task.ID,     // Task ID
					"error":   err.Error(), // Error message
				}).Error("Failed to delete task")
			}
			invalidateTasks(ctx, rdb, user.ID)
		}
		redirectHome(c, FlashTaskDeleted)
	}
}

// sessionUser returns the caller, sending anonymous requests to the login page
func sessionUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		return nil, false
	}
	return user, true
}

// invalidateTasks retires every cached listing of the user
func invalidateTasks(ctx context.Context, rdb *redis.Client, userID uint) {
	if err := utils.InvalidateTaskList(ctx, rdb, userID); err != nil {
		logCacheError(userID, err, "Failed to invalidate task cache")
	}
}

func logCacheError(userID uint, err error, msg string) {
	logrus.WithFields(logrus.Fields{
		"user_id": userID,      // User ID
		"error":   err.Error(), // Error message
	}).Error(msg)
}

// ownedTask loads the task named by the :id path parameter if the user owns it
func ownedTask(c *gin.Context, store db.Store, userID uint) (*domain.Task, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, false // Not a task ID, nothing to do
	}
	task, err := store.FindTask(c.Request.Context(), uint(id))
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"task_id": id,          // Task ID
				"error":   err.Error(), // Error message
			}).Error("Failed to load task")
		}
		return nil, false
	}
	// Someone else's task is treated exactly like a missing one
	if !task.OwnedBy(userID) {
		return nil, false
	}
	return task, true
}

// today returns the current calendar date as midnight UTC, comparable with parsed deadlines
func today() time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// redirectHome sends the caller to the dashboard with a flash message
func redirectHome(c *gin.Context, flash string) {
	setFlash(c, flash)
	c.Redirect(http.StatusSeeOther, "/")
}
