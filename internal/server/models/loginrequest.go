package models

import "time"

// LoginRequest is a visitor's request for a contributor account.
type LoginRequest struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name" validate:"required,max=100"`
	LastName     string    `json:"last_name" validate:"required,max=100"`
	Salutation   string    `json:"salutation,omitempty" validate:"max=20"`
	Country      string    `json:"country" validate:"required,max=100"`
	Email        string    `json:"email" validate:"required,email,max=255"`
	PhoneNumber  string    `json:"phone_number,omitempty" validate:"max=50"`
	Organization string    `json:"organization,omitempty" validate:"max=200"`
	Comments     string    `json:"comments,omitempty" validate:"max=2000"`
	CreatedAt    time.Time `json:"created_at"`
}
