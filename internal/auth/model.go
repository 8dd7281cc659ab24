package auth

import "time"

// User is the domain entity. Password holds the bcrypt hash for the local
// backend and is empty when the user comes from the upstream store.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"-"`
	Created  time.Time `json:"created"`
}
