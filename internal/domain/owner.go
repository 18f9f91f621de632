package domain

import "time"

// Owner es la cuenta administradora única del sistema.
type Owner struct {
	ID           string    `json:"id"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	Contact      string    `json:"contact"`
	PasswordHash string    `json:"-"`
	Picture      string    `json:"picture,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
