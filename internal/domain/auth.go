package domain

import (
	"context"
	"errors"
	"slices"
	"time"
)

// RoleAdmin is required for every catalog mutation.
const RoleAdmin = "ADMIN"

var ErrInvalidCredentials = errors.New("invalid credentials")

// Principal is the authenticated caller carried by a token.
type Principal struct {
	Subject string
	Email   string
	Roles   []string
}

// HasRole reports whether p carries role.
func (p *Principal) HasRole(role string) bool {
	return p != nil && slices.Contains(p.Roles, role)
}

// PasswordHasher hashes and verifies passwords. Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated principal.
type TokenIssuer interface {
	Issue(subject, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the principal it was issued for.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// AuthService authenticates the catalog administrator.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}
