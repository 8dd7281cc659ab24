package auth

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Gateway exchanges user credentials for a user record plus an opaque
// upstream credential. The local Postgres backend returns an empty
// credential; the PocketBase backend returns the bearer token that later
// store calls forward.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*User, string, error)
}
