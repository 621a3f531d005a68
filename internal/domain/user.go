package domain

import "strings"

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                     // Primary key
	Username string `gorm:"unique;not null;size:255" json:"username"` // Unique username
	Password string `gorm:"not null" json:"-"`                        // Hashed password
}

// LooksLikeEmail reports whether the username can double as a mail recipient
func (u *User) LooksLikeEmail() bool {
	return strings.Contains(u.Username, "@")
}
