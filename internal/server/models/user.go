// Package models defines server-side records persisted in PostgreSQL that
// are not part of the shared catalog domain.
package models

import "time"

// User is a contributor account. Accounts are created by operators after a
// login request has been reviewed.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// DisplayName is the name recorded as submitter on new submissions.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
