package domain

import "time"

// User models a registered account. Only the bcrypt hash of the password is
// ever stored, and the JSON tag keeps it out of responses.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
