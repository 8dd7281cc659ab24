package auth

import (
	"context"
	"errors"

	"github.com/AleksL04/SmartKitBud/internal/pocketbase"
)

const usersCollection = "users"

// PocketBaseGateway forwards credentials to the upstream store. It never
// inspects the returned token; callers carry it inside the session.
type PocketBaseGateway struct {
	pb *pocketbase.Client
}

func NewPocketBaseGateway(pb *pocketbase.Client) *PocketBaseGateway {
	return &PocketBaseGateway{pb: pb}
}

func (g *PocketBaseGateway) Login(ctx context.Context, email, password string) (*User, string, error) {
	result, err := g.pb.AuthWithPassword(ctx, usersCollection, email, password)
	if err != nil {
		var apiErr *pocketbase.APIError
		if errors.Is(err, pocketbase.ErrUnauthorized) || errors.As(err, &apiErr) {
			// Upstream rejections all collapse to invalid credentials;
			// anything more specific would leak account existence.
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	user := &User{
		ID:    result.Record.ID,
		Name:  result.Record.Name,
		Email: result.Record.Email,
	}
	return user, result.Token, nil
}
