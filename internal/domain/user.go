package domain

import "time"

// User es una cuenta de comprador regular.
type User struct {
	ID           string    `json:"id"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	Contact      string    `json:"contact,omitempty"`
	PasswordHash string    `json:"-"`
	Picture      string    `json:"picture,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
