package domain

import "time"

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority maps a form value onto a known priority
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return "", false
}

// Status of a task
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Toggled returns the opposite status
func (s Status) Toggled() Status {
	if s == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

// DateLayout is the ISO calendar date format used by forms and templates
const DateLayout = "2006-01-02"

// Task Model
type Task struct {
	ID       uint      `gorm:"primaryKey" json:"id"`                                       // Primary key
	Title    string    `gorm:"not null" json:"title"`                                      // Task title
	Deadline time.Time `gorm:"type:date;not null;index" json:"deadline"`                   // Due date, midnight UTC
	Priority Priority  `gorm:"type:varchar(10);not null;default:'Medium'" json:"priority"` // Low, Medium or High
	Status   Status    `gorm:"type:varchar(10);not null;default:'Pending'" json:"status"`  // Pending or Completed
	OwnerID  uint      `gorm:"not null;index" json:"owner_id"`                             // Foreign key to User
	Owner    *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`     // Owning user
}

// OwnedBy reports whether the task belongs to the given user
func (t Task) OwnedBy(userID uint) bool {
	return t.OwnerID == userID
}

// DeadlineString formats the deadline as an ISO date
func (t Task) DeadlineString() string {
	return t.Deadline.Format(DateLayout)
}

// Completed reports whether the task is done
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}
