// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered identity. PasswordHash is a bcrypt hash and never
// leaves the server; use Summary for anything client-facing.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// UserSummary is the public view of a User.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.UserName, Email: u.Email, Role: u.Role}
}
