package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// CookieName is the HttpOnly cookie carrying the signed session token.
const CookieName = "session"

// DefaultTTL matches the upstream token lifetime we forward.
const DefaultTTL = 24 * time.Hour

// Payload is what a session token carries. UpstreamToken is the opaque
// bearer token issued by the record store; we forward it, never parse it.
type Payload struct {
	UserID        string
	Email         string
	UpstreamToken string
}

type Codec struct {
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCodec(secret string, ttl time.Duration, log zerolog.Logger) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("empty session secret")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, log: log}, nil
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a session token for the payload, expiring after the codec TTL.
func (c *Codec) Issue(p Payload) (string, error) {
	if p.UserID == "" {
		return "", errors.New("empty userID passed to Issue")
	}

	claims := jwt.MapClaims{
		"userID":        p.UserID,
		"email":         p.Email,
		"upstreamToken": p.UpstreamToken,
		"iat":           time.Now().Unix(),
		"exp":           time.Now().Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify returns the payload for a valid, unexpired token. Any failure
// (tampered signature, expiry, wrong algorithm) is logged and yields nil,
// never an error: callers treat nil as "no session".
func (c *Codec) Verify(tokenString string) *Payload {
	if tokenString == "" {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		c.log.Debug().Err(err).Msg("session verification failed")
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	userID, _ := claims["userID"].(string)
	if userID == "" {
		return nil
	}
	email, _ := claims["email"].(string)
	upstream, _ := claims["upstreamToken"].(string)

	return &Payload{UserID: userID, Email: email, UpstreamToken: upstream}
}

// --------------------------------------------------
// Request context plumbing
// --------------------------------------------------

type payloadKey struct{}

// WithPayload attaches the verified session to the request context so
// per-request store clients can pick up the upstream token.
func WithPayload(ctx context.Context, p *Payload) context.Context {
	return context.WithValue(ctx, payloadKey{}, p)
}

// FromContext returns the verified session, or nil.
func FromContext(ctx context.Context) *Payload {
	p, _ := ctx.Value(payloadKey{}).(*Payload)
	return p
}

// UpstreamTokenFromContext returns the forwarded store credential, if any.
func UpstreamTokenFromContext(ctx context.Context) string {
	if p := FromContext(ctx); p != nil {
		return p.UpstreamToken
	}
	return ""
}
