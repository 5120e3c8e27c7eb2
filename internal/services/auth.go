package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventcatalog/internal/domain"
)

// adminSubject is the token subject of the configured administrator.
const adminSubject = "admin"

type authService struct {
	adminEmail    string
	adminPassHash string
	hasher        domain.PasswordHasher
	issuer        domain.TokenIssuer
	jwtExpiry     time.Duration
	logger        *slog.Logger
}

// NewAuthService authenticates the single administrator configured by email and bcrypt hash.
// An empty hash disables login.
func NewAuthService(adminEmail, adminPassHash string, hasher domain.PasswordHasher, issuer domain.TokenIssuer, jwtExpiry time.Duration, logger *slog.Logger) domain.AuthService {
	return &authService{
		adminEmail:    strings.TrimSpace(strings.ToLower(adminEmail)),
		adminPassHash: adminPassHash,
		hasher:        hasher,
		issuer:        issuer,
		jwtExpiry:     jwtExpiry,
		logger:        logger,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if s.adminPassHash == "" || s.adminEmail == "" || email != s.adminEmail {
		s.logger.WarnContext(ctx, "login rejected", "email", email)
		return "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.adminPassHash, password); err != nil {
		s.logger.WarnContext(ctx, "login rejected", "email", email)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(adminSubject, email, []string{domain.RoleAdmin}, s.jwtExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	s.logger.InfoContext(ctx, "admin logged in", "email", email)
	return token, nil
}
