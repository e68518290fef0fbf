package ports

import (
	"context"
	"time"

	"github.com/cipco/cms-backend/internal/core/domain"
)

// TokenService issues and verifies signed identity tokens.
type TokenService interface {
	Issue(userID, role string) (token string, expiresAt time.Time, err error)
	// Verify fails with domain.ErrUnauthenticated for any malformed, forged or
	// expired token.
	Verify(token string) (*domain.TokenClaims, error)
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
